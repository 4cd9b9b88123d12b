package escrow

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

const (
	escrowBucketName  = "esc"
	pendingBucketName = "escpend"
)

var (
	_ orm.Model = (*Escrow)(nil)
	_ orm.Model = (*PendingPurchase)(nil)
)

// Validate ensures the record holds funds for a non empty purchase.
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(e.Seller.Validate(), "seller"))
	errs = errors.Append(errs, errors.Wrap(e.AssetContract.Validate(), "asset contract"))
	if e.LockedAmount == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "locked amount must be positive"))
	}
	if e.Quantity == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "quantity must be positive"))
	}
	errs = errors.Append(errs, errors.Wrap(e.CreatedAt.Validate(), "created at"))
	return errs
}

// Validate ensures the purchase can be refunded.
func (p *PendingPurchase) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(p.Seller.Validate(), "seller"))
	errs = errors.Append(errs, errors.Wrap(p.AssetContract.Validate(), "asset contract"))
	if p.LockedAmount == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "locked amount must be positive"))
	}
	errs = errors.Append(errs, errors.Wrap(p.CreatedAt.Validate(), "created at"))
	errs = errors.Append(errs, errors.Wrap(orm.ValidateSequence(p.CallID), "call id"))
	return errs
}

// Ledger keeps at most one escrow record per buyer. Records are never
// updated, only inserted and removed.
type Ledger struct {
	bucket orm.ModelBucket
}

// NewLedger returns the ledger stored under the "esc" prefix.
func NewLedger() Ledger {
	return Ledger{bucket: orm.NewModelBucket(escrowBucketName, &Escrow{})}
}

// Insert stores a record for the buyer. It fails with ErrDuplicate if the
// buyer already has one.
func (l Ledger) Insert(db weave.KVStore, buyer weave.Address, e *Escrow) error {
	if err := buyer.Validate(); err != nil {
		return errors.Wrap(err, "buyer")
	}
	return l.bucket.Insert(db, buyer, e)
}

// Get returns the record of the buyer. It fails with ErrNotFound if there
// is none.
func (l Ledger) Get(db weave.ReadOnlyKVStore, buyer weave.Address) (*Escrow, error) {
	var e Escrow
	if err := l.bucket.One(db, buyer, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Remove deletes the record of the buyer and returns it. Removing an
// absent record is not an error, nil is returned instead.
func (l Ledger) Remove(db weave.KVStore, buyer weave.Address) (*Escrow, error) {
	e, err := l.Get(db, buyer)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	if err := l.bucket.Delete(db, buyer); err != nil {
		return nil, err
	}
	return e, nil
}

// Enumerate calls fn for every record, ordered by the buyer address. The
// database must not be modified while enumerating.
func (l Ledger) Enumerate(db weave.ReadOnlyKVStore, fn func(buyer weave.Address, e *Escrow) error) error {
	it, err := l.bucket.IterAll(db)
	if err != nil {
		return err
	}
	defer it.Release()
	for {
		var e Escrow
		key, err := it.Next(&e)
		switch {
		case errors.ErrIteratorDone.Is(err):
			return nil
		case err != nil:
			return err
		}
		if err := fn(weave.Address(key), &e); err != nil {
			return err
		}
	}
}

func newPendingBucket() orm.ModelBucket {
	return orm.NewModelBucket(pendingBucketName, &PendingPurchase{})
}

// RegisterQuery exposes the ledger as "/escrows", pending purchases as
// "/escrows/pending" and the buyer view as "/escrows/view".
func RegisterQuery(qr weave.QueryRouter) {
	NewLedger().bucket.Register("escrows", qr)
	newPendingBucket().Register("escrows/pending", qr)
	qr.Register("/escrows/view", viewQuery{ledger: NewLedger()})
}
