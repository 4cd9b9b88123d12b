package remote

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

const (
	optKey = "remote"

	// DefaultMaxCallsPerBlock is used when the configuration does not
	// limit the number of calls processed in a single block.
	DefaultMaxCallsPerBlock = 1000
)

var configKey = []byte("_c:remote")

// Validate ensures fees can be collected.
func (c *Configuration) Validate() error {
	if c.CallFee > 0 {
		if err := c.Collector.Validate(); err != nil {
			return errors.Wrap(err, "collector")
		}
	}
	if c.MaxCallsPerBlock < 0 {
		return errors.Wrap(errors.ErrInput, "max calls per block must not be negative")
	}
	return nil
}

func (c *Configuration) maxCalls() int {
	if c.MaxCallsPerBlock == 0 {
		return DefaultMaxCallsPerBlock
	}
	return int(c.MaxCallsPerBlock)
}

// LoadConfig returns the remote call configuration. Missing
// configuration means calls are free.
func LoadConfig(db weave.ReadOnlyKVStore) (*Configuration, error) {
	raw, err := db.Get(configKey)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read configuration")
	}
	var c Configuration
	if raw == nil {
		return &c, nil
	}
	if err := c.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return &c, nil
}

// SaveConfig validates and stores the remote call configuration.
func SaveConfig(db weave.KVStore, c *Configuration) error {
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	raw, err := c.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return db.Set(configKey, raw)
}

// Initializer loads the remote call configuration from genesis.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis reads the "remote" genesis section.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf struct {
		CallFee          uint64        `json:"call_fee"`
		Collector        weave.Address `json:"collector"`
		MaxCallsPerBlock int32         `json:"max_calls_per_block"`
	}
	if err := opts.ReadOptions(optKey, &conf); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return SaveConfig(db, &Configuration{
		CallFee:          conf.CallFee,
		Collector:        conf.Collector,
		MaxCallsPerBlock: conf.MaxCallsPerBlock,
	})
}
