package asset

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

const (
	pathEscrowPurchase = "asset/escrow_purchase"
	pathTransfer       = "asset/transfer"
	pathRelease        = "asset/release"
)

var (
	_ weave.Msg = (*EscrowPurchaseMsg)(nil)
	_ weave.Msg = (*TransferMsg)(nil)
	_ weave.Msg = (*ReleaseMsg)(nil)
)

func (EscrowPurchaseMsg) Path() string {
	return pathEscrowPurchase
}

func (m *EscrowPurchaseMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Seller.Validate(), "seller"))
	errs = errors.Append(errs, errors.Wrap(m.Buyer.Validate(), "buyer"))
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "amount must be positive"))
	}
	if m.Seller.Equals(m.Buyer) {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "seller and buyer must differ"))
	}
	return errs
}

func (TransferMsg) Path() string {
	return pathTransfer
}

func (m *TransferMsg) Validate() error {
	var errs error
	if m.Quantity == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "quantity must be positive"))
	}
	errs = errors.Append(errs, errors.Wrap(m.From.Validate(), "from"))
	errs = errors.Append(errs, errors.Wrap(m.To.Validate(), "to"))
	if m.From.Equals(m.To) {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "cannot transfer to self"))
	}
	return errs
}

func (ReleaseMsg) Path() string {
	return pathRelease
}

func (m *ReleaseMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Seller.Validate(), "seller"))
	if m.Quantity == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "quantity must be positive"))
	}
	return errs
}

// Validate ensures the receipt describes a purchase.
func (r *PurchaseReceipt) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(r.Service.Validate(), "service"))
	errs = errors.Append(errs, errors.Wrap(r.Seller.Validate(), "seller"))
	errs = errors.Append(errs, errors.Wrap(r.Buyer.Validate(), "buyer"))
	if r.Quantity == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "quantity must be positive"))
	}
	return errs
}
