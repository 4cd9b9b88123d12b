package weavetest

import (
	"context"
	"time"

	weave "github.com/iov-one/weave-escrow"
)

// BlockContext returns a context as the application would build it for a
// block at given height and time, with chain id "test-chain".
func BlockContext(height int64, now time.Time) weave.Context {
	ctx := context.Background()
	ctx = weave.WithChainID(ctx, "test-chain")
	ctx = weave.WithHeight(ctx, height)
	ctx = weave.WithBlockTime(ctx, now)
	return ctx
}
