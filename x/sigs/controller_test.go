package sigs

import (
	"context"
	"testing"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

// signedTx is a minimal SignedTx implementation.
type signedTx struct {
	weavetest.Tx
	payload []byte
	sigs    []*StdSignature
}

func (s *signedTx) GetSignBytes() ([]byte, error) { return s.payload, nil }

func (s *signedTx) GetSignatures() []*StdSignature { return s.sigs }

func TestVerifySignatures(t *testing.T) {
	const chainID = "test-chain"
	db := store.MemStore()

	k1 := weavetest.NewKey()
	k2 := weavetest.NewKey()

	tx := &signedTx{payload: []byte("transfer all the money")}

	sig1, err := SignTx(k1, tx, chainID, 0)
	assert.Nil(t, err)
	sig2, err := SignTx(k2, tx, chainID, 0)
	assert.Nil(t, err)

	tx.sigs = []*StdSignature{sig1, sig2}
	signers, err := VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	assert.Equal(t, []weave.Condition{k1.PublicKey().Condition(), k2.PublicKey().Condition()}, signers)

	// replay is rejected, sequence was incremented
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, ErrInvalidSequence, err)

	seq, err := NextSequence(db, k1.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	// signature for another chain is invalid
	bad, err := SignTx(k1, tx, "other-chain", 1)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{bad}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// modified payload is invalid
	good, err := SignTx(k1, tx, chainID, 1)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{good}
	tx.payload = []byte("transfer none of the money")
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestBuildSignBytes(t *testing.T) {
	_, err := BuildSignBytes([]byte("foo"), "test-chain", -1)
	assert.IsErr(t, ErrInvalidSequence, err)
	_, err = BuildSignBytes([]byte("foo"), "no", 1)
	assert.IsErr(t, errors.ErrInput, err)

	a, err := BuildSignBytes([]byte("foo"), "test-chain", 1)
	assert.Nil(t, err)
	b, err := BuildSignBytes([]byte("foo"), "test-chain", 2)
	assert.Nil(t, err)
	if len(a) != 64 {
		t.Fatalf("want sha512 output, got %d bytes", len(a))
	}
	if string(a) == string(b) {
		t.Fatal("sequence not part of the sign bytes")
	}
}

func TestDecorator(t *testing.T) {
	const chainID = "test-chain"
	key := weavetest.NewKey()

	cases := map[string]struct {
		decorator Decorator
		tx        func(t *testing.T) weave.Tx
		wantErr   *errors.Error
		wantAuth  bool
	}{
		"signed": {
			decorator: NewDecorator(),
			tx: func(t *testing.T) weave.Tx {
				tx := &signedTx{payload: []byte("x")}
				sig, err := SignTx(key, tx, chainID, 0)
				assert.Nil(t, err)
				tx.sigs = []*StdSignature{sig}
				return tx
			},
			wantAuth: true,
		},
		"no signatures": {
			decorator: NewDecorator(),
			tx: func(t *testing.T) weave.Tx {
				return &signedTx{payload: []byte("x")}
			},
			wantErr: errors.ErrUnauthorized,
		},
		"no signatures allowed": {
			decorator: NewDecorator().AllowMissingSigs(),
			tx: func(t *testing.T) weave.Tx {
				return &signedTx{payload: []byte("x")}
			},
		},
		"not a signed tx": {
			decorator: NewDecorator(),
			tx: func(t *testing.T) weave.Tx {
				return &weavetest.Tx{}
			},
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := weave.WithChainID(context.Background(), chainID)
			h := &authCheckHandler{}

			_, err := tc.decorator.Deliver(ctx, db, tc.tx(t), h)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantAuth, h.authenticated)
		})
	}
}

type authCheckHandler struct {
	authenticated bool
}

func (h *authCheckHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	h.authenticated = len(Authenticate{}.GetConditions(ctx)) > 0
	return &weave.DeliverResult{}, nil
}
