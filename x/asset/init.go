package asset

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

const optKey = "asset"

// GenesisService is used to parse the "asset" genesis section.
type GenesisService struct {
	Address   weave.Address `json:"address"`
	Name      string        `json:"name"`
	UnitPrice uint64        `json:"unit_price"`
	Escrow    weave.Address `json:"escrow"`
	Holdings  []struct {
		Owner    weave.Address `json:"owner"`
		Quantity uint64        `json:"quantity"`
	} `json:"holdings"`
}

// Initializer creates asset services and their holdings from genesis.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var services []GenesisService
	if err := opts.ReadOptions(optKey, &services); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, s := range services {
		service := Service{Name: s.Name, UnitPrice: s.UnitPrice, Escrow: s.Escrow}
		if err := ctrl.CreateService(db, s.Address, &service); err != nil {
			return errors.Wrapf(err, "service %d", i)
		}
		for j, h := range s.Holdings {
			if err := h.Owner.Validate(); err != nil {
				return errors.Wrapf(err, "service %d holding %d owner", i, j)
			}
			if err := ctrl.Issue(db, s.Address, h.Owner, h.Quantity); err != nil {
				return errors.Wrapf(err, "service %d holding %d", i, j)
			}
		}
	}
	return nil
}
