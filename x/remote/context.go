package remote

import (
	"context"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/x"
)

type ctxKey int

const (
	ctxKeyConditions ctxKey = iota
	ctxKeyTarget
	ctxKeyUpstream
)

// withAuth returns a context instance with the caller attached. Attached
// conditions are used for authentication by authenticator implementation from
// this package.
func withAuth(ctx weave.Context, cs ...weave.Condition) weave.Context {
	return context.WithValue(ctx, ctxKeyConditions, cs)
}

// Authenticate implements an x.Authenticator interface that recognizes the
// caller of a remote call executed by the dispatcher.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions implements x.Authenticator interface.
func (Authenticate) GetConditions(ctx weave.Context) []weave.Condition {
	val, _ := ctx.Value(ctxKeyConditions).([]weave.Condition)
	return val
}

// HasAddress implements x.Authenticator interface.
func (a Authenticate) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

func withTarget(ctx weave.Context, target weave.Address) weave.Context {
	return context.WithValue(ctx, ctxKeyTarget, target)
}

// Target returns the address of the service the currently executed remote
// call is addressed to. It returns false when the context does not belong
// to a remote call.
func Target(ctx weave.Context) (weave.Address, bool) {
	t, ok := ctx.Value(ctxKeyTarget).(weave.Address)
	return t, ok
}

func withUpstream(ctx weave.Context, res *CallResult) weave.Context {
	return context.WithValue(ctx, ctxKeyUpstream, res)
}

// UpstreamResult returns the result of the call the currently executed
// continuation follows. It returns false when the context does not belong
// to a continuation.
func UpstreamResult(ctx weave.Context) (*CallResult, bool) {
	res, ok := ctx.Value(ctxKeyUpstream).(*CallResult)
	return res, ok && res != nil
}

// WithCall returns a context as the dispatcher would build it for a call
// made by caller to target, optionally continuing upstream. It is meant for
// testing handlers that are reachable only through remote calls.
func WithCall(ctx weave.Context, caller weave.Condition, target weave.Address, upstream *CallResult) weave.Context {
	ctx = withAuth(ctx, caller)
	ctx = withTarget(ctx, target)
	if upstream != nil {
		ctx = withUpstream(ctx, upstream)
	}
	return ctx
}
