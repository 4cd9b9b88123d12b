package escrow

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

const (
	pathInitiate    = "escrow/initiate"
	pathConfirm     = "escrow/confirm"
	pathApprove     = "escrow/approve"
	pathCancel      = "escrow/cancel"
	pathTimeoutScan = "escrow/timeout_scan"
)

var (
	_ weave.Msg = (*InitiateMsg)(nil)
	_ weave.Msg = (*ConfirmMsg)(nil)
	_ weave.Msg = (*ApproveMsg)(nil)
	_ weave.Msg = (*CancelMsg)(nil)
	_ weave.Msg = (*TimeoutScanMsg)(nil)
)

func (InitiateMsg) Path() string {
	return pathInitiate
}

func (m *InitiateMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Seller.Validate(), "seller"))
	errs = errors.Append(errs, errors.Wrap(m.AssetContract.Validate(), "asset contract"))
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "payment required"))
	}
	return errs
}

func (ConfirmMsg) Path() string {
	return pathConfirm
}

func (m *ConfirmMsg) Validate() error {
	return errors.Wrap(m.Buyer.Validate(), "buyer")
}

func (ApproveMsg) Path() string {
	return pathApprove
}

func (*ApproveMsg) Validate() error {
	return nil
}

func (CancelMsg) Path() string {
	return pathCancel
}

func (*CancelMsg) Validate() error {
	return nil
}

func (TimeoutScanMsg) Path() string {
	return pathTimeoutScan
}

func (*TimeoutScanMsg) Validate() error {
	return nil
}
