package asset

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

// Controller gives access to asset services and holdings.
type Controller struct {
	services orm.ModelBucket
	holdings orm.ModelBucket
}

// NewController returns a controller operating on the default buckets.
func NewController() Controller {
	return Controller{
		services: newServiceBucket(),
		holdings: newHoldingBucket(),
	}
}

// Service returns the configuration of the service registered under given
// address.
func (c Controller) Service(db weave.ReadOnlyKVStore, addr weave.Address) (*Service, error) {
	var s Service
	if err := c.services.One(db, addr, &s); err != nil {
		return nil, errors.Wrapf(err, "service %s", addr)
	}
	return &s, nil
}

// CreateService registers a new service under given address.
func (c Controller) CreateService(db weave.KVStore, addr weave.Address, s *Service) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "service address")
	}
	return c.services.Insert(db, addr, s)
}

// Holding returns the holding of owner within a service. An absent
// holding is returned as an empty one.
func (c Controller) Holding(db weave.ReadOnlyKVStore, service, owner weave.Address) (*Holding, error) {
	var h Holding
	switch err := c.holdings.One(db, holdingKey(service, owner), &h); {
	case err == nil:
		return &h, nil
	case errors.ErrNotFound.Is(err):
		return &Holding{}, nil
	default:
		return nil, err
	}
}

// Issue adds quantity units to the holding of owner.
func (c Controller) Issue(db weave.KVStore, service, owner weave.Address, quantity uint64) error {
	h, err := c.Holding(db, service, owner)
	if err != nil {
		return err
	}
	if h.Quantity+quantity < h.Quantity {
		return errors.Wrap(errors.ErrOverflow, "quantity")
	}
	h.Quantity += quantity
	return c.save(db, service, owner, h)
}

// Reserve sets aside quantity units of the owner, so that they cannot be
// moved by anything but a reserved transfer.
func (c Controller) Reserve(db weave.KVStore, service, owner weave.Address, quantity uint64) error {
	h, err := c.Holding(db, service, owner)
	if err != nil {
		return err
	}
	if h.Available() < quantity {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%d units available, %d requested", h.Available(), quantity)
	}
	h.Reserved += quantity
	return c.save(db, service, owner, h)
}

// Release returns quantity reserved units of the owner to its available
// units.
func (c Controller) Release(db weave.KVStore, service, owner weave.Address, quantity uint64) error {
	h, err := c.Holding(db, service, owner)
	if err != nil {
		return err
	}
	if h.Reserved < quantity {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%d units reserved, %d released", h.Reserved, quantity)
	}
	h.Reserved -= quantity
	return c.save(db, service, owner, h)
}

// Transfer moves quantity units from one holding to another. When reserved
// is set, only reserved units are moved and the reservation is consumed.
func (c Controller) Transfer(db weave.KVStore, service, from, to weave.Address, quantity uint64, reserved bool) error {
	if from.Equals(to) {
		return errors.Wrap(errors.ErrInput, "cannot transfer to self")
	}
	src, err := c.Holding(db, service, from)
	if err != nil {
		return err
	}
	if reserved {
		if src.Reserved < quantity {
			return errors.Wrapf(errors.ErrInsufficientAmount, "%d units reserved, %d requested", src.Reserved, quantity)
		}
		src.Reserved -= quantity
	} else if src.Available() < quantity {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%d units available, %d requested", src.Available(), quantity)
	}
	src.Quantity -= quantity

	dst, err := c.Holding(db, service, to)
	if err != nil {
		return err
	}
	if dst.Quantity+quantity < dst.Quantity {
		return errors.Wrap(errors.ErrOverflow, "quantity")
	}
	dst.Quantity += quantity

	if err := c.save(db, service, from, src); err != nil {
		return err
	}
	return c.save(db, service, to, dst)
}

// save stores the holding, or removes it when it holds nothing.
func (c Controller) save(db weave.KVStore, service, owner weave.Address, h *Holding) error {
	key := holdingKey(service, owner)
	if h.Quantity == 0 {
		err := c.holdings.Delete(db, key)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	return c.holdings.Put(db, key, h)
}
