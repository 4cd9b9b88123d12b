package server

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/weave-escrow/errors"
)

// ConfigFile is the name of the node configuration file within the home
// directory.
const ConfigFile = "escrowd.toml"

// Config holds the settings of a running node. Values are read from the
// configuration file and can be overwritten by command line flags.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind"`
	// Metrics is the address of the prometheus metrics endpoint. Empty
	// value disables the endpoint.
	Metrics string `toml:"metrics"`
	// Debug includes the call stack in returned errors.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Bind:    "tcp://localhost:26658",
		Metrics: "localhost:26660",
	}
}

// LoadConfig reads the configuration file from the home directory. Missing
// file is not an error and results in the default configuration.
func LoadConfig(home string) (Config, error) {
	conf := DefaultConfig()
	path := filepath.Join(home, ConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return conf, nil
	}
	meta, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return conf, errors.Wrapf(errors.ErrInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return conf, nil
}

// SaveConfig writes given configuration into the home directory.
func SaveConfig(home string, conf Config) error {
	f, err := os.Create(filepath.Join(home, ConfigFile))
	if err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(conf); err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	return nil
}
