package cash

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

// Controller is the functionality needed by cash.Handler and
// other extensions that move native currency.
type Controller interface {
	// Balance returns the amount held by given address, zero for unknown
	// addresses.
	Balance(db weave.ReadOnlyKVStore, addr weave.Address) (uint64, error)

	// MoveCoins moves the given amount from src to dest. It fails if the
	// amount is zero, src and dest are the same account or src does not
	// hold enough funds.
	MoveCoins(db weave.KVStore, src, dest weave.Address, amount uint64) error

	// IssueCoins creates the given amount in the dest wallet.
	IssueCoins(db weave.KVStore, dest weave.Address, amount uint64) error
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a basic controller implementation
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) load(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

// Balance returns the amount held by given address.
func (c BaseController) Balance(db weave.ReadOnlyKVStore, addr weave.Address) (uint64, error) {
	w, err := c.load(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Amount, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db weave.KVStore, src, dest weave.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "cannot transfer to self")
	}

	sender, err := c.load(db, src)
	if err != nil {
		return err
	}
	if sender.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, need %d", sender.Amount, amount)
	}
	recipient, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if recipient.Amount+amount < recipient.Amount {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}

	sender.Amount -= amount
	recipient.Amount += amount
	if err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}
	if err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db weave.KVStore, dest weave.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if w.Amount+amount < w.Amount {
		return errors.Wrap(errors.ErrOverflow, "wallet balance")
	}
	w.Amount += amount
	return c.bucket.Put(db, dest, w)
}
