package escrow

import (
	"time"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// DefaultTimeout is used when the configuration does not set one.
const DefaultTimeout = weave.UnixDuration(24 * time.Hour / time.Second)

var (
	configKey  = []byte("_c:escrow")
	reserveKey = []byte("_r:escrow")
)

// Validate ensures the timeout is usable.
func (c *Configuration) Validate() error {
	if c.Timeout < 0 {
		return errors.Wrap(errors.ErrInput, "timeout must not be negative")
	}
	if len(c.Operator) != 0 {
		if err := c.Operator.Validate(); err != nil {
			return errors.Wrap(err, "operator")
		}
	}
	return nil
}

// threshold returns the age after which a record is swept on behalf of
// given signer.
func (c *Configuration) threshold(signer weave.Address) weave.UnixDuration {
	if len(c.Operator) != 0 && c.Operator.Equals(signer) {
		return 0
	}
	if c.Timeout == 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// LoadConfig returns the escrow configuration. Missing configuration
// means no operator and the default timeout.
func LoadConfig(db weave.ReadOnlyKVStore) (*Configuration, error) {
	var c Configuration
	if err := load(db, configKey, &c); err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	return &c, nil
}

// SaveConfig validates and stores the escrow configuration.
func SaveConfig(db weave.KVStore, c *Configuration) error {
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return save(db, configKey, c)
}

func load(db weave.ReadOnlyKVStore, key []byte, dest weave.Persistent) error {
	raw, err := db.Get(key)
	if err != nil {
		return errors.Wrap(err, "cannot read")
	}
	if raw == nil {
		return nil
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}

func save(db weave.KVStore, key []byte, src weave.Persistent) error {
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return db.Set(key, raw)
}
