package cash

import (
	"github.com/iov-one/weave-escrow/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

var _ orm.Model = (*Wallet)(nil)

// Validate is always successful, any balance is a valid balance.
func (w *Wallet) Validate() error {
	return nil
}

// NewBucket returns the bucket holding wallets, keyed by owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
