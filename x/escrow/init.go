package escrow

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/cash"
)

const optKey = "escrow"

// Initializer stores the escrow configuration and funds the contract fee
// reserve from genesis.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf struct {
		Operator weave.Address      `json:"operator"`
		Timeout  weave.UnixDuration `json:"timeout"`
		// Reserve is issued to the contract account to pay remote call
		// fees of confirmations and cancellations.
		Reserve uint64 `json:"reserve"`
	}
	if err := opts.ReadOptions(optKey, &conf); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	c := Configuration{Operator: conf.Operator, Timeout: conf.Timeout}
	if err := SaveConfig(db, &c); err != nil {
		return err
	}
	if conf.Reserve > 0 {
		if err := cash.NewController().IssueCoins(db, ContractAddress, conf.Reserve); err != nil {
			return errors.Wrap(err, "reserve")
		}
	}
	return nil
}
