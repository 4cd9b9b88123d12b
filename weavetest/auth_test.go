package weavetest

import (
	"context"
	"testing"

	weave "github.com/iov-one/weave-escrow"
)

func TestAuth(t *testing.T) {
	c1 := NewCondition()
	c2 := NewCondition()
	c3 := NewCondition()

	ctx := context.Background()

	a := &Auth{Signer: c1, Signers: []weave.Condition{c2}}
	if !a.HasAddress(ctx, c1.Address()) {
		t.Fatal("signer not authenticated")
	}
	if !a.HasAddress(ctx, c2.Address()) {
		t.Fatal("signers not authenticated")
	}
	if a.HasAddress(ctx, c3.Address()) {
		t.Fatal("unknown condition authenticated")
	}
	if n := len(a.GetConditions(ctx)); n != 2 {
		t.Fatalf("want 2 conditions, got %d", n)
	}
}

func TestCtxAuth(t *testing.T) {
	c1 := NewCondition()
	c2 := NewCondition()

	a := &CtxAuth{Key: "auth"}
	ctx := a.SetConditions(context.Background(), c1)
	if !a.HasAddress(ctx, c1.Address()) {
		t.Fatal("condition not authenticated")
	}
	if a.HasAddress(ctx, c2.Address()) {
		t.Fatal("unknown condition authenticated")
	}
	if conds := a.GetConditions(context.Background()); conds != nil {
		t.Fatalf("unexpected conditions: %v", conds)
	}
}
