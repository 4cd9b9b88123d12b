package app

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx, CheckTx and EndBlock handlers to the storage and
// query functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder weave.TxDecoder
	handler weave.Handler
	ticker  weave.Ticker
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder weave.TxDecoder,
	handler weave.Handler,
	ticker weave.Ticker,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		ticker:   ticker,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler. Changes made by a failed
// transaction are discarded.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return deliverTxError(err, b.debug)
	}

	ctx := weave.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", weave.GetPath(tx))

	cache := b.DeliverStore().CacheWrap()
	res, err := b.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return deliverTxError(err, b.debug)
	}
	if err := cache.Write(); err != nil {
		return deliverTxError(err, b.debug)
	}
	return abci.ResponseDeliverTx{
		Data:      res.Data,
		Log:       res.Log,
		Tags:      res.Tags,
		GasUsed:   res.GasUsed,
		GasWanted: res.GasUsed,
	}
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return checkTxError(err, b.debug)
	}

	ctx := weave.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", weave.GetPath(tx))

	cache := b.CheckStore().CacheWrap()
	res, err := b.handler.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return checkTxError(err, b.debug)
	}
	if err := cache.Write(); err != nil {
		return checkTxError(err, b.debug)
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}

// EndBlock - ABCI. The ticker is executed after all transactions of the
// block were delivered, so that anything they scheduled is processed
// within the same block.
func (b BaseApp) EndBlock(req abci.RequestEndBlock) abci.ResponseEndBlock {
	res := b.StoreApp.EndBlock(req)
	if b.ticker == nil {
		return res
	}
	ctx := weave.WithLogInfo(b.BlockContext(), "call", "end_block")
	tr, err := b.ticker.Tick(ctx, b.DeliverStore())
	if err != nil {
		// Read comment on StoreApp type header.
		panic(err)
	}
	res.Tags = append(res.Tags, tr.Tags...)
	return res
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx weave.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}

func deliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, msg := errors.ABCIInfo(err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: msg}
}

func checkTxError(err error, debug bool) abci.ResponseCheckTx {
	code, msg := errors.ABCIInfo(err, debug)
	return abci.ResponseCheckTx{Code: code, Log: msg}
}
