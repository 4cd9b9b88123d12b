package asset

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x"
	"github.com/iov-one/weave-escrow/x/remote"
)

const (
	purchaseCost int64 = 100
	transferCost int64 = 100
	releaseCost  int64 = 50
)

// RegisterRoutes registers handlers for the asset moving messages. Given
// authenticator must recognize callers of remote calls.
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	ctrl := NewController()
	r.Handle(&EscrowPurchaseMsg{}, &EscrowPurchaseHandler{auth: auth, ctrl: ctrl})
	r.Handle(&TransferMsg{}, &TransferHandler{auth: auth, ctrl: ctrl})
	r.Handle(&ReleaseMsg{}, &ReleaseHandler{auth: auth, ctrl: ctrl})
}

// authorize returns the service the current remote call is addressed to,
// ensuring that the call was made by its escrow contract.
func authorize(ctx weave.Context, db weave.ReadOnlyKVStore, auth x.Authenticator, ctrl Controller) (weave.Address, error) {
	addr, ok := remote.Target(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "asset service can be used only through remote calls")
	}
	service, err := ctrl.Service(db, addr)
	if err != nil {
		return nil, err
	}
	if !auth.HasAddress(ctx, service.Escrow) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "caller is not the escrow of this service")
	}
	return addr, nil
}

// EscrowPurchaseHandler reserves the units of the seller that the amount
// pays for.
type EscrowPurchaseHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*EscrowPurchaseHandler)(nil)

func (h *EscrowPurchaseHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: purchaseCost}, nil
}

func (h *EscrowPurchaseHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	addr, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	service, err := h.ctrl.Service(db, addr)
	if err != nil {
		return nil, err
	}
	quantity := msg.Amount / service.UnitPrice
	if quantity == 0 {
		return nil, errors.Wrapf(errors.ErrAmount, "amount %d does not pay for a single unit of %d", msg.Amount, service.UnitPrice)
	}
	if err := h.ctrl.Reserve(db, addr, msg.Seller, quantity); err != nil {
		return nil, errors.Wrap(err, "seller")
	}

	receipt := PurchaseReceipt{
		Service:  addr,
		Seller:   msg.Seller,
		Buyer:    msg.Buyer,
		Quantity: quantity,
		Amount:   msg.Amount,
	}
	raw, err := receipt.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	weave.GetLogger(ctx).Info("asset purchase reserved",
		"module", "asset", "service", addr, "seller", msg.Seller, "quantity", quantity)
	return &weave.DeliverResult{Data: raw}, nil
}

func (h *EscrowPurchaseHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (weave.Address, *EscrowPurchaseMsg, error) {
	var msg EscrowPurchaseMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	addr, err := authorize(ctx, db, h.auth, h.ctrl)
	if err != nil {
		return nil, nil, err
	}
	return addr, &msg, nil
}

// TransferHandler moves units between holdings.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*TransferHandler)(nil)

func (h *TransferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: transferCost}, nil
}

func (h *TransferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	addr, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, addr, msg.From, msg.To, msg.Quantity, msg.Reserved); err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("asset transferred",
		"module", "asset", "service", addr, "from", msg.From, "to", msg.To, "quantity", msg.Quantity)
	return &weave.DeliverResult{}, nil
}

func (h *TransferHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (weave.Address, *TransferMsg, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	addr, err := authorize(ctx, db, h.auth, h.ctrl)
	if err != nil {
		return nil, nil, err
	}
	return addr, &msg, nil
}

// ReleaseHandler cancels a reservation made by an escrow purchase.
type ReleaseHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*ReleaseHandler)(nil)

func (h *ReleaseHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: releaseCost}, nil
}

func (h *ReleaseHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	addr, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Release(db, addr, msg.Seller, msg.Quantity); err != nil {
		return nil, errors.Wrap(err, "seller")
	}
	weave.GetLogger(ctx).Info("asset reservation released",
		"module", "asset", "service", addr, "seller", msg.Seller, "quantity", msg.Quantity)
	return &weave.DeliverResult{}, nil
}

func (h *ReleaseHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (weave.Address, *ReleaseMsg, error) {
	var msg ReleaseMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	addr, err := authorize(ctx, db, h.auth, h.ctrl)
	if err != nil {
		return nil, nil, err
	}
	return addr, &msg, nil
}
