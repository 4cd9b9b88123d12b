package escrow

import (
	"github.com/iov-one/weave-escrow/errors"
)

// ErrRemoteCall is returned when the asset service leg of a purchase
// failed or returned a result that does not match the purchase.
var ErrRemoteCall = errors.Register(130, "remote call failed")
