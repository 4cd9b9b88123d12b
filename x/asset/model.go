package asset

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

const (
	serviceBucketName = "asvc"
	holdingBucketName = "ashold"
)

var (
	_ orm.Model = (*Service)(nil)
	_ orm.Model = (*Holding)(nil)
)

// Validate ensures the service can sell units.
func (s *Service) Validate() error {
	var errs error
	if s.Name == "" {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "name"))
	}
	if s.UnitPrice == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "unit price must be positive"))
	}
	errs = errors.Append(errs, errors.Wrap(s.Escrow.Validate(), "escrow"))
	return errs
}

// Validate ensures no more units are reserved than held.
func (h *Holding) Validate() error {
	if h.Reserved > h.Quantity {
		return errors.Wrapf(errors.ErrState, "reserved %d of %d", h.Reserved, h.Quantity)
	}
	return nil
}

// Available returns the number of units that are not reserved.
func (h *Holding) Available() uint64 {
	return h.Quantity - h.Reserved
}

func newServiceBucket() orm.ModelBucket {
	return orm.NewModelBucket(serviceBucketName, &Service{})
}

func newHoldingBucket() orm.ModelBucket {
	return orm.NewModelBucket(holdingBucketName, &Holding{})
}

// holdingKey groups holdings by service, so that a prefix query returns
// all holdings of a single service.
func holdingKey(service, owner weave.Address) []byte {
	key := make([]byte, 0, len(service)+len(owner))
	key = append(key, service...)
	return append(key, owner...)
}

// RegisterQuery exposes holdings as "/assets" and services as
// "/assets/services".
func RegisterQuery(qr weave.QueryRouter) {
	newHoldingBucket().Register("assets", qr)
	newServiceBucket().Register("assets/services", qr)
}
