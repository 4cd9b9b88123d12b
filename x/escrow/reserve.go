package escrow

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/cash"
)

// ContractCondition is the identity of the escrow contract. Remote calls
// are made on its behalf and its account holds both the escrowed funds
// and the reserve paying for remote call fees.
var ContractCondition = weave.NewCondition("escrow", "contract", []byte("purchase"))

// ContractAddress is the account of the escrow contract.
var ContractAddress = ContractCondition.Address()

// LockedTotal returns the sum of all amounts the contract holds on behalf
// of pending purchases and escrow records.
func LockedTotal(db weave.ReadOnlyKVStore) (uint64, error) {
	var r Reserve
	if err := load(db, reserveKey, &r); err != nil {
		return 0, errors.Wrap(err, "reserve")
	}
	return r.Locked, nil
}

func lock(db weave.KVStore, amount uint64) error {
	locked, err := LockedTotal(db)
	if err != nil {
		return err
	}
	if locked+amount < locked {
		return errors.Wrap(errors.ErrOverflow, "locked total")
	}
	return save(db, reserveKey, &Reserve{Locked: locked + amount})
}

func unlock(db weave.KVStore, amount uint64) error {
	locked, err := LockedTotal(db)
	if err != nil {
		return err
	}
	if locked < amount {
		return errors.Wrapf(errors.ErrState, "cannot unlock %d of %d", amount, locked)
	}
	return save(db, reserveKey, &Reserve{Locked: locked - amount})
}

// release pays amount held by the contract to given account.
func release(db weave.KVStore, payments cash.Controller, to weave.Address, amount uint64) error {
	if err := unlock(db, amount); err != nil {
		return err
	}
	if err := payments.MoveCoins(db, ContractAddress, to, amount); err != nil {
		return errors.Wrap(err, "cannot release funds")
	}
	return nil
}

// freeReserve returns the part of the contract balance that is not locked
// on behalf of buyers.
func freeReserve(db weave.ReadOnlyKVStore, payments cash.Controller) (uint64, error) {
	balance, err := payments.Balance(db, ContractAddress)
	if err != nil {
		return 0, err
	}
	locked, err := LockedTotal(db)
	if err != nil {
		return 0, err
	}
	if balance <= locked {
		return 0, nil
	}
	return balance - locked, nil
}

// ensureFeeReserve fails if paying fee would use funds locked on behalf of
// buyers.
func ensureFeeReserve(db weave.ReadOnlyKVStore, payments cash.Controller, fee uint64) error {
	if fee == 0 {
		return nil
	}
	free, err := freeReserve(db, payments)
	if err != nil {
		return err
	}
	if free < fee {
		return errors.Wrapf(errors.ErrInsufficientAmount,
			"contract fee reserve %d cannot pay the remote call fee %d", free, fee)
	}
	return nil
}
