package app

import (
	"context"
	"testing"
	"time"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store/iavl"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// keyQuery returns the value stored under the queried key.
type keyQuery struct{}

func (keyQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrap(errors.ErrInput, "unsupported modifier")
	}
	v, err := db.Get(data)
	if err != nil || v == nil {
		return nil, err
	}
	return []weave.Model{weave.Pair(data, v)}, nil
}

// recordingTicker writes a key and counts its executions.
type recordingTicker struct {
	calls int
	now   time.Time
}

func (t *recordingTicker) Tick(ctx weave.Context, db weave.CacheableKVStore) (*weave.TickResult, error) {
	t.calls++
	now, err := weave.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	t.now = now
	if err := db.Set([]byte("ticked"), []byte("yes")); err != nil {
		return nil, err
	}
	return &weave.TickResult{Tags: []common.KVPair{{Key: []byte("tick"), Value: []byte("1")}}}, nil
}

type optsInitializer struct {
	got weave.Options
}

func (i *optsInitializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	i.got = opts
	return db.Set([]byte("genesis"), []byte("loaded"))
}

func newTestApp(t *testing.T) (BaseApp, *recordingTicker, *optsInitializer) {
	t.Helper()

	r := NewRouter()
	r.Handle(&weavetest.Msg{RoutePath: "test/ok"}, &weavetest.Handler{
		Key:           []byte("ok"),
		Value:         []byte("stored"),
		DeliverResult: weave.DeliverResult{Data: []byte("done")},
	})
	r.Handle(&weavetest.Msg{RoutePath: "test/fail"}, &weavetest.Handler{
		Key:        []byte("fail"),
		Value:      []byte("stored"),
		DeliverErr: errors.ErrAmount,
	})

	qr := weave.NewQueryRouter()
	qr.Register("/keys", keyQuery{})

	init := &optsInitializer{}
	ticker := &recordingTicker{}
	store := NewStoreApp("test-app", iavl.NewMemCommitStore(), qr, context.Background()).WithInit(init)
	return NewBaseApp(store, DecodeTx, r, ticker, false), ticker, init
}

func encodeTx(t *testing.T, path string) []byte {
	t.Helper()
	tx, err := NewTx(&weavetest.Msg{RoutePath: path, Serialized: []byte("{}")})
	require.NoError(t, err)
	raw, err := tx.Marshal()
	require.NoError(t, err)
	return raw
}

func TestBaseApp(t *testing.T) {
	app, ticker, init := newTestApp(t)

	app.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain",
		AppStateBytes: []byte(`{"test": {"value": 1}}`),
	})
	assert.Equal(t, "test-chain", app.GetChainID())
	assert.JSONEq(t, `{"value": 1}`, string(init.got["test"]))

	// Genesis can be loaded only once.
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "other-chain", AppStateBytes: []byte(`{}`)})
	})

	now := time.Date(2019, 5, 1, 12, 0, 0, 0, time.UTC)
	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: now}})

	chk := app.CheckTx(encodeTx(t, "test/ok"))
	assert.Equal(t, uint32(0), chk.Code, chk.Log)

	res := app.DeliverTx(encodeTx(t, "test/ok"))
	assert.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, []byte("done"), res.Data)

	res = app.DeliverTx(encodeTx(t, "test/fail"))
	assert.Equal(t, errors.ErrAmount.ABCICode(), res.Code)

	res = app.DeliverTx(encodeTx(t, "test/unknown"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)

	res = app.DeliverTx([]byte("not a transaction"))
	assert.NotEqual(t, uint32(0), res.Code)

	end := app.EndBlock(abci.RequestEndBlock{Height: 1})
	assert.Equal(t, 1, ticker.calls)
	assert.Equal(t, now, ticker.now)
	assert.Equal(t, []common.KVPair{{Key: []byte("tick"), Value: []byte("1")}}, end.Tags)

	commit := app.Commit()
	assert.NotEmpty(t, commit.Data)

	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)
	assert.Equal(t, "test-app", info.Data)

	cases := map[string]struct {
		key     string
		want    []byte
		wantErr bool
	}{
		"genesis state":         {key: "genesis", want: []byte("loaded")},
		"delivered transaction": {key: "ok", want: []byte("stored")},
		"failed transaction":    {key: "fail"},
		"end block":             {key: "ticked", want: []byte("yes")},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			q := app.Query(abci.RequestQuery{Path: "/keys", Data: []byte(tc.key)})
			require.Equal(t, uint32(0), q.Code, q.Log)

			var values ResultSet
			require.NoError(t, values.Unmarshal(q.Value))
			if tc.want == nil {
				assert.Empty(t, values.Results)
				return
			}
			require.Len(t, values.Results, 1)
			assert.Equal(t, tc.want, values.Results[0])
		})
	}

	q := app.Query(abci.RequestQuery{Path: "/keys?prefix", Data: []byte("ok")})
	assert.Equal(t, errors.ErrInput.ABCICode(), q.Code)
	q = app.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), q.Code)
}

func TestJoinResults(t *testing.T) {
	models := []weave.Model{
		weave.Pair([]byte("a"), []byte("1")),
		weave.Pair([]byte("b"), []byte("2")),
	}
	got, err := JoinResults(ResultsFromKeys(models), ResultsFromValues(models))
	require.NoError(t, err)
	assert.Equal(t, models, got)

	_, err = JoinResults(ResultsFromKeys(models), &ResultSet{})
	assert.True(t, errors.ErrInput.Is(err))
}
