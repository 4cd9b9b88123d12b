package escrow

import (
	"testing"
	"time"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/x"
	"github.com/iov-one/weave-escrow/x/asset"
	"github.com/iov-one/weave-escrow/x/cash"
	"github.com/iov-one/weave-escrow/x/remote"
	"github.com/stretchr/testify/require"
)

const (
	testFee       = 1
	testUnitPrice = 10
	testReserve   = 10
)

type testRouter map[string]weave.Handler

func (r testRouter) Handle(m weave.Msg, h weave.Handler) {
	r[m.Path()] = h
}

func (r testRouter) Handler(path string) (weave.Handler, error) {
	h, ok := r[path]
	if !ok {
		return nil, errors.ErrNotFound.Newf("no handler for %q", path)
	}
	return h, nil
}

// market is a complete setup of an asset service, its escrow and the
// remote call dispatcher connecting them.
type market struct {
	t          testing.TB
	db         weave.CacheableKVStore
	router     testRouter
	dispatcher *remote.Dispatcher
	signers    *weavetest.CtxAuth
	cash       cash.BaseController
	assets     asset.Controller

	now       time.Time
	height    int64
	service   weave.Address
	collector weave.Address
	operator  weave.Condition
	seller    weave.Condition
	buyer     weave.Condition
}

func newMarket(t testing.TB, sellerUnits uint64, buyerFunds uint64) *market {
	t.Helper()
	m := &market{
		t:         t,
		db:        store.MemStore(),
		router:    make(testRouter),
		signers:   &weavetest.CtxAuth{Key: "signers"},
		cash:      cash.NewController(),
		assets:    asset.NewController(),
		now:       time.Now().UTC().Truncate(time.Second),
		height:    1,
		service:   weavetest.RandomAddr(t),
		collector: weavetest.RandomAddr(t),
		operator:  weavetest.NewCondition(),
		seller:    weavetest.NewCondition(),
		buyer:     weavetest.NewCondition(),
	}
	m.dispatcher = remote.NewDispatcher(m.router)

	auth := x.ChainAuth(m.signers, remote.Authenticate{})
	calls := remote.NewCaller(m.cash)
	asset.RegisterRoutes(m.router, remote.Authenticate{})
	RegisterRoutes(m.router, auth, m.cash, calls)

	require.NoError(t, remote.SaveConfig(m.db, &remote.Configuration{CallFee: testFee, Collector: m.collector}))
	require.NoError(t, SaveConfig(m.db, &Configuration{Operator: m.operator.Address()}))
	require.NoError(t, m.cash.IssueCoins(m.db, ContractAddress, testReserve))
	require.NoError(t, m.assets.CreateService(m.db, m.service, &asset.Service{
		Name:      "gold",
		UnitPrice: testUnitPrice,
		Escrow:    ContractAddress,
	}))
	if sellerUnits > 0 {
		require.NoError(t, m.assets.Issue(m.db, m.service, m.seller.Address(), sellerUnits))
	}
	if buyerFunds > 0 {
		require.NoError(t, m.cash.IssueCoins(m.db, m.buyer.Address(), buyerFunds))
	}
	return m
}

func (m *market) ctx(signers ...weave.Condition) weave.Context {
	ctx := weavetest.BlockContext(m.height, m.now)
	return m.signers.SetConditions(ctx, signers...)
}

// deliver runs the message in its own cache, as the application would
// run a transaction.
func (m *market) deliver(msg weave.Msg, signers ...weave.Condition) (*weave.DeliverResult, error) {
	h, err := m.router.Handler(msg.Path())
	require.NoError(m.t, err)
	tx := &weavetest.Tx{Msg: msg}
	cache := m.db.CacheWrap()
	if _, err := h.Check(m.ctx(signers...), cache, tx); err != nil {
		cache.Discard()
		return nil, err
	}
	cache.Discard()

	cache = m.db.CacheWrap()
	res, err := h.Deliver(m.ctx(signers...), cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	require.NoError(m.t, cache.Write())
	return res, nil
}

// endBlock executes all queued remote calls and moves to the next block.
func (m *market) endBlock() {
	_, err := m.dispatcher.Tick(m.ctx(), m.db)
	require.NoError(m.t, err)
	m.height++
	m.now = m.now.Add(5 * time.Second)
}

func (m *market) balance(addr weave.Address) uint64 {
	b, err := m.cash.Balance(m.db, addr)
	require.NoError(m.t, err)
	return b
}

func (m *market) units(owner weave.Address) asset.Holding {
	h, err := m.assets.Holding(m.db, m.service, owner)
	require.NoError(m.t, err)
	return *h
}

func (m *market) locked() uint64 {
	l, err := LockedTotal(m.db)
	require.NoError(m.t, err)
	return l
}

// initiate pays for given number of units including the remote call fees.
func (m *market) initiate(units uint64) ([]byte, error) {
	res, err := m.deliver(&InitiateMsg{
		Seller:        m.seller.Address(),
		AssetContract: m.service,
		Amount:        units*testUnitPrice + 2*testFee,
	}, m.buyer)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}
