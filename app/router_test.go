package app

import (
	"context"
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()
	good := &weavetest.Msg{RoutePath: "test/good"}
	bad := &weavetest.Msg{RoutePath: "test/bad"}
	missing := &weavetest.Msg{RoutePath: "test/missing"}

	counter := &weavetest.Handler{}
	r.Handle(good, counter)
	r.Handle(bad, &weavetest.Handler{
		CheckErr:   errors.ErrAmount,
		DeliverErr: errors.ErrAmount,
	})

	// invalid registrations panic
	assert.Panics(t, func() { r.Handle(good, counter) })
	assert.Panics(t, func() { r.Handle(&weavetest.Msg{RoutePath: "l:7"}, counter) })

	ctx := context.Background()
	_, err := r.Check(ctx, nil, &weavetest.Tx{Msg: good})
	require.NoError(t, err)
	_, err = r.Deliver(ctx, nil, &weavetest.Tx{Msg: good})
	require.NoError(t, err)
	assert.Equal(t, 2, counter.CallCount())

	_, err = r.Deliver(ctx, nil, &weavetest.Tx{Msg: bad})
	assert.True(t, errors.ErrAmount.Is(err))

	_, err = r.Deliver(ctx, nil, &weavetest.Tx{Msg: missing})
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Check(ctx, nil, &weavetest.Tx{Msg: missing})
	assert.True(t, errors.ErrNotFound.Is(err))

	h, err := r.Handler("test/good")
	require.NoError(t, err)
	assert.Equal(t, counter, h)
	assert.Equal(t, 2, counter.CallCount())
}
