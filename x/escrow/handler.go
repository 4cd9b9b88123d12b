package escrow

import (
	"fmt"
	"time"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
	"github.com/iov-one/weave-escrow/x"
	"github.com/iov-one/weave-escrow/x/asset"
	"github.com/iov-one/weave-escrow/x/cash"
	"github.com/iov-one/weave-escrow/x/remote"
)

const (
	initiateCost    int64 = 300
	confirmCost     int64 = 0
	approveCost     int64 = 50
	cancelCost      int64 = 100
	timeoutScanCost int64 = 500
)

// RegisterRoutes registers the escrow lifecycle handlers. Given
// authenticator must recognize both transaction signers and callers of
// remote calls.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, payments cash.Controller, calls *remote.Caller) {
	b := base{
		auth:     auth,
		ledger:   NewLedger(),
		pending:  newPendingBucket(),
		payments: payments,
		calls:    calls,
	}
	r.Handle(&InitiateMsg{}, InitiateHandler{b})
	r.Handle(&ConfirmMsg{}, ConfirmHandler{b})
	r.Handle(&ApproveMsg{}, ApproveHandler{b})
	r.Handle(&CancelMsg{}, CancelHandler{b})
	r.Handle(&TimeoutScanMsg{}, TimeoutScanHandler{b})
}

// base holds everything the lifecycle handlers share.
type base struct {
	auth     x.Authenticator
	ledger   Ledger
	pending  orm.ModelBucket
	payments cash.Controller
	calls    *remote.Caller
}

// signer returns the address of the main signer of the transaction.
func (b base) signer(ctx weave.Context) (weave.Address, error) {
	main := x.MainSigner(ctx, b.auth)
	if main == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return main.Address(), nil
}

func (b base) loadPending(db weave.ReadOnlyKVStore, buyer weave.Address) (*PendingPurchase, error) {
	var p PendingPurchase
	if err := b.pending.One(db, buyer, &p); err != nil {
		return nil, errors.Wrap(err, "pending purchase")
	}
	return &p, nil
}

// compensate undoes a purchase that will never be escrowed. The locked
// amount goes back to the buyer and the units the asset service reserved,
// if any, are released by a remote call. When the fee reserve cannot pay
// for that call, the missing part is taken from the refund.
// It returns the id of the release call and the refunded amount.
func (b base) compensate(db weave.KVStore, buyer weave.Address, p *PendingPurchase, reserved *asset.PurchaseReceipt) ([]byte, uint64, error) {
	refund := p.LockedAmount
	if reserved != nil {
		fee, err := b.calls.Fee(db)
		if err != nil {
			return nil, 0, err
		}
		free, err := freeReserve(db, b.payments)
		if err != nil {
			return nil, 0, err
		}
		if free < fee {
			if short := fee - free; short < refund {
				refund -= short
			} else {
				refund = 0
			}
		}
	}
	if err := unlock(db, p.LockedAmount); err != nil {
		return nil, 0, err
	}

	var releaseID []byte
	if reserved != nil {
		msg := &asset.ReleaseMsg{Seller: reserved.Seller, Quantity: reserved.Quantity}
		id, err := b.calls.Call(db, ContractCondition, p.AssetContract, msg)
		if err != nil {
			return nil, 0, errors.Wrap(err, "cannot schedule reservation release")
		}
		releaseID = id
	}
	if refund > 0 {
		if err := b.payments.MoveCoins(db, ContractAddress, buyer, refund); err != nil {
			return nil, 0, errors.Wrap(err, "refund")
		}
	}
	if err := b.pending.Delete(db, buyer); err != nil {
		return nil, 0, err
	}
	return releaseID, refund, nil
}

// parseReceipt returns the receipt of a successful asset reservation.
func parseReceipt(res *remote.CallResult) (*asset.PurchaseReceipt, error) {
	if res == nil {
		return nil, errors.Wrap(ErrRemoteCall, "no asset reservation result")
	}
	if !res.Successful {
		return nil, errors.Wrapf(ErrRemoteCall, "asset reservation failed: %s", res.Info)
	}
	var r asset.PurchaseReceipt
	if err := r.Unmarshal(res.Data); err != nil {
		return nil, errors.Wrapf(ErrRemoteCall, "cannot parse asset receipt: %s", err)
	}
	if err := r.Validate(); err != nil {
		return nil, errors.Wrapf(ErrRemoteCall, "invalid asset receipt: %s", err)
	}
	return &r, nil
}

// InitiateHandler locks the payment of the buyer and starts the chain
// reserving the asset.
type InitiateHandler struct {
	base
}

var _ weave.Handler = InitiateHandler{}

func (h InitiateHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: initiateCost}, nil
}

func (h InitiateHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	buyer, msg, fee, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := weave.UnixBlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}

	if err := h.payments.MoveCoins(db, buyer, ContractAddress, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot attach payment")
	}
	net := msg.Amount - 2*fee
	if err := lock(db, net); err != nil {
		return nil, err
	}

	purchase := &asset.EscrowPurchaseMsg{
		Seller: msg.Seller,
		Buyer:  buyer,
		Amount: net,
	}
	callID, err := h.calls.CallThen(db, ContractCondition, msg.AssetContract, purchase, &ConfirmMsg{Buyer: buyer})
	if err != nil {
		return nil, errors.Wrap(err, "cannot schedule purchase")
	}

	pending := PendingPurchase{
		Seller:        msg.Seller,
		AssetContract: msg.AssetContract,
		LockedAmount:  net,
		CreatedAt:     now,
		CallID:        callID,
	}
	if err := h.pending.Insert(db, buyer, &pending); err != nil {
		return nil, errors.Wrap(err, "cannot store pending purchase")
	}

	countPurchase(outcomeInitiated)
	weave.GetLogger(ctx).Info("purchase initiated",
		"module", "escrow", "buyer", buyer, "seller", msg.Seller, "locked", net, "call", fmt.Sprintf("%X", callID))
	return &weave.DeliverResult{Data: callID}, nil
}

func (h InitiateHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (weave.Address, *InitiateMsg, uint64, error) {
	var msg InitiateMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}
	buyer, err := h.signer(ctx)
	if err != nil {
		return nil, nil, 0, err
	}
	if buyer.Equals(ContractAddress) {
		return nil, nil, 0, errors.Wrap(errors.ErrUnauthorized, "contract cannot purchase")
	}
	if buyer.Equals(msg.Seller) {
		return nil, nil, 0, errors.Wrap(errors.ErrInput, "seller and buyer must differ")
	}
	if msg.Seller.Equals(ContractAddress) {
		return nil, nil, 0, errors.Wrap(errors.ErrInput, "contract cannot sell")
	}

	fee, err := h.calls.Fee(db)
	if err != nil {
		return nil, nil, 0, err
	}
	// The two purchase calls are paid from the payment and the fee of a
	// compensating call must stay locked.
	if fee > msg.Amount/3 || msg.Amount == 0 {
		return nil, nil, 0, errors.Wrapf(errors.ErrAmount, "payment %d does not cover the remote call fees, %d required", msg.Amount, 3*fee)
	}

	if _, err := h.ledger.Get(db, buyer); !errors.ErrNotFound.Is(err) {
		if err != nil {
			return nil, nil, 0, err
		}
		return nil, nil, 0, errors.Wrap(errors.ErrDuplicate, "buyer has an escrow")
	}
	switch err := h.pending.Has(db, buyer); {
	case err == nil:
		return nil, nil, 0, errors.Wrap(errors.ErrDuplicate, "buyer has a pending purchase")
	case !errors.ErrNotFound.Is(err):
		return nil, nil, 0, err
	}
	return buyer, &msg, fee, nil
}

// ConfirmHandler is the continuation of a purchase. It records the escrow
// once the asset service reserved the asset, or refunds the buyer
// otherwise.
type ConfirmHandler struct {
	base
}

var _ weave.Handler = ConfirmHandler{}

func (h ConfirmHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: confirmCost}, nil
}

func (h ConfirmHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	buyer := msg.Buyer
	pending, err := h.loadPending(db, buyer)
	if err != nil {
		return nil, err
	}

	upstream, _ := remote.UpstreamResult(ctx)
	receipt, err := parseReceipt(upstream)
	if err != nil {
		return nil, h.abort(ctx, db, buyer, pending, nil, err)
	}
	if err := matchReceipt(receipt, buyer, pending); err != nil {
		return nil, h.abort(ctx, db, buyer, pending, receipt, err)
	}
	fee, err := h.calls.Fee(db)
	if err != nil {
		return nil, err
	}
	if err := ensureFeeReserve(db, h.payments, fee); err != nil {
		return nil, h.abort(ctx, db, buyer, pending, receipt, err)
	}

	now, err := weave.UnixBlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	escrow := Escrow{
		Seller:        pending.Seller,
		LockedAmount:  pending.LockedAmount,
		AssetContract: pending.AssetContract,
		Quantity:      receipt.Quantity,
		CreatedAt:     now,
	}
	if err := h.ledger.Insert(db, buyer, &escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	if err := h.pending.Delete(db, buyer); err != nil {
		return nil, err
	}

	transfer := &asset.TransferMsg{
		Quantity: escrow.Quantity,
		From:     escrow.Seller,
		To:       buyer,
		Reserved: true,
	}
	if _, err := h.calls.Call(db, ContractCondition, escrow.AssetContract, transfer); err != nil {
		return nil, errors.Wrap(err, "cannot schedule asset transfer")
	}

	countPurchase(outcomeConfirmed)
	weave.GetLogger(ctx).Info("purchase escrowed",
		"module", "escrow", "buyer", buyer, "quantity", escrow.Quantity, "locked", escrow.LockedAmount)
	return &weave.DeliverResult{}, nil
}

// matchReceipt ensures the receipt describes the pending purchase.
func matchReceipt(r *asset.PurchaseReceipt, buyer weave.Address, p *PendingPurchase) error {
	switch {
	case !r.Service.Equals(p.AssetContract):
		return errors.Wrap(ErrRemoteCall, "receipt issued by another asset service")
	case !r.Seller.Equals(p.Seller), !r.Buyer.Equals(buyer):
		return errors.Wrap(ErrRemoteCall, "receipt parties do not match")
	case r.Amount != p.LockedAmount:
		return errors.Wrapf(ErrRemoteCall, "receipt amount %d, locked %d", r.Amount, p.LockedAmount)
	}
	return nil
}

// abort compensates the pending purchase and fails the call while keeping
// the compensation.
func (h ConfirmHandler) abort(ctx weave.Context, db weave.KVStore, buyer weave.Address, p *PendingPurchase, reserved *asset.PurchaseReceipt, reason error) error {
	releaseID, refund, err := h.compensate(db, buyer, p, reserved)
	if err != nil {
		return errors.Wrapf(err, "cannot compensate %s", reason)
	}
	countPurchase(outcomeAborted)
	weave.GetLogger(ctx).Info("purchase aborted, buyer refunded",
		"module", "escrow", "buyer", buyer, "refund", refund, "release", fmt.Sprintf("%X", releaseID), "reason", reason)
	return remote.Abort(reason)
}

func (h ConfirmHandler) validate(ctx weave.Context, tx weave.Tx) (*ConfirmMsg, error) {
	var msg ConfirmMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, ContractAddress) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "confirmation can be executed only by the contract")
	}
	return &msg, nil
}

// ApproveHandler pays the seller of the signer's escrow.
type ApproveHandler struct {
	base
}

var _ weave.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: approveCost}, nil
}

func (h ApproveHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	buyer, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := settle(db, h.base, buyer, escrow); err != nil {
		return nil, err
	}
	countPurchase(outcomeApproved)
	weave.GetLogger(ctx).Info("escrow approved",
		"module", "escrow", "buyer", buyer, "seller", escrow.Seller, "paid", escrow.LockedAmount)
	return &weave.DeliverResult{}, nil
}

func (h ApproveHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (weave.Address, *Escrow, error) {
	var msg ApproveMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	buyer, err := h.signer(ctx)
	if err != nil {
		return nil, nil, err
	}
	escrow, err := h.ledger.Get(db, buyer)
	if err != nil {
		return nil, nil, errors.Wrap(err, "escrow")
	}
	return buyer, escrow, nil
}

// settle pays the seller and removes the record.
func settle(db weave.KVStore, b base, buyer weave.Address, e *Escrow) error {
	if err := release(db, b.payments, e.Seller, e.LockedAmount); err != nil {
		return errors.Wrap(err, "cannot pay the seller")
	}
	if _, err := b.ledger.Remove(db, buyer); err != nil {
		return err
	}
	return nil
}

// CancelHandler refunds the signer's escrow and returns the asset to the
// seller.
type CancelHandler struct {
	base
}

var _ weave.Handler = CancelHandler{}

func (h CancelHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: cancelCost}, nil
}

func (h CancelHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	buyer, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := release(db, h.payments, buyer, escrow.LockedAmount); err != nil {
		return nil, errors.Wrap(err, "cannot refund")
	}
	if _, err := h.ledger.Remove(db, buyer); err != nil {
		return nil, err
	}
	giveBack := &asset.TransferMsg{
		Quantity: escrow.Quantity,
		From:     buyer,
		To:       escrow.Seller,
	}
	callID, err := h.calls.Call(db, ContractCondition, escrow.AssetContract, giveBack)
	if err != nil {
		return nil, errors.Wrap(err, "cannot schedule asset return")
	}

	countPurchase(outcomeCancelled)
	weave.GetLogger(ctx).Info("escrow cancelled",
		"module", "escrow", "buyer", buyer, "refund", escrow.LockedAmount, "call", fmt.Sprintf("%X", callID))
	return &weave.DeliverResult{Data: callID}, nil
}

func (h CancelHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (weave.Address, *Escrow, error) {
	var msg CancelMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	buyer, err := h.signer(ctx)
	if err != nil {
		return nil, nil, err
	}
	escrow, err := h.ledger.Get(db, buyer)
	if err != nil {
		return nil, nil, errors.Wrap(err, "escrow")
	}
	fee, err := h.calls.Fee(db)
	if err != nil {
		return nil, nil, err
	}
	if err := ensureFeeReserve(db, h.payments, fee); err != nil {
		return nil, nil, err
	}
	return buyer, escrow, nil
}

// TimeoutScanHandler pays out every escrow older than the timeout and
// refunds purchases whose confirmation never ran.
type TimeoutScanHandler struct {
	base
}

var _ weave.Handler = TimeoutScanHandler{}

func (h TimeoutScanHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: timeoutScanCost}, nil
}

func (h TimeoutScanHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	signer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	threshold := conf.threshold(signer).Duration()
	log := weave.GetLogger(ctx).With("module", "escrow")

	type expired struct {
		buyer  weave.Address
		escrow *Escrow
	}
	var escrows []expired
	err = h.ledger.Enumerate(db, func(buyer weave.Address, e *Escrow) error {
		if weave.IsExpired(ctx, e.CreatedAt.Add(threshold)) {
			escrows = append(escrows, expired{buyer: buyer, escrow: e})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot scan escrows")
	}
	for _, e := range escrows {
		if err := settle(db, h.base, e.buyer, e.escrow); err != nil {
			return nil, errors.Wrapf(err, "buyer %s", e.buyer)
		}
		countPurchase(outcomeTimedOut)
		log.Info("escrow timed out, seller paid", "buyer", e.buyer, "seller", e.escrow.Seller, "paid", e.escrow.LockedAmount)
	}

	stale, err := h.stalePurchases(ctx, db, threshold)
	if err != nil {
		return nil, err
	}
	for _, p := range stale {
		releaseID, refund, err := h.compensate(db, p.buyer, p.purchase, p.reserved)
		if err != nil {
			return nil, errors.Wrapf(err, "buyer %s", p.buyer)
		}
		countPurchase(outcomeRefunded)
		log.Info("interrupted purchase refunded", "buyer", p.buyer, "refund", refund, "release", fmt.Sprintf("%X", releaseID))
	}

	return &weave.DeliverResult{
		Log: fmt.Sprintf("%d escrows paid out, %d purchases refunded", len(escrows), len(stale)),
	}, nil
}

// stalePurchases returns pending purchases older than the threshold whose
// remote call chain is no longer running. Their confirmation will never
// happen.
func (h TimeoutScanHandler) stalePurchases(ctx weave.Context, db weave.ReadOnlyKVStore, threshold time.Duration) ([]stalePurchase, error) {
	it, err := h.pending.IterAll(db)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var stale []stalePurchase
	for {
		var p PendingPurchase
		key, err := it.Next(&p)
		switch {
		case errors.ErrIteratorDone.Is(err):
			return stale, nil
		case err != nil:
			return nil, errors.Wrap(err, "cannot scan pending purchases")
		}
		if !weave.IsExpired(ctx, p.CreatedAt.Add(threshold)) {
			continue
		}
		running, err := remote.InFlight(db, p.CallID)
		if err != nil {
			return nil, err
		}
		if running {
			continue
		}
		// The reservation result tells whether the asset service set
		// units aside that must be released.
		var reserved *asset.PurchaseReceipt
		switch res, err := remote.Result(db, p.CallID); {
		case err == nil:
			reserved, _ = parseReceipt(res)
		case !errors.ErrNotFound.Is(err):
			return nil, err
		}
		stale = append(stale, stalePurchase{buyer: weave.Address(key), purchase: &p, reserved: reserved})
	}
}

type stalePurchase struct {
	buyer    weave.Address
	purchase *PendingPurchase
	reserved *asset.PurchaseReceipt
}

func (h TimeoutScanHandler) validate(ctx weave.Context, tx weave.Tx) (weave.Address, error) {
	var msg TimeoutScanMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return h.signer(ctx)
}
