package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagForce = "f"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// InitCmd adds the application state to the genesis file created by
// "tendermint init" and writes the default node configuration. The
// application passes in a function to generate proper options.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	var force bool
	initFlags := flag.NewFlagSet("init", flag.ExitOnError)
	initFlags.BoolVar(&force, flagForce, false, "overwrite existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return err
	}

	genFile := filepath.Join(home, "config", "genesis.json")
	doc, err := readGenesis(genFile)
	if err != nil {
		return err
	}
	if _, ok := doc["app_state"]; ok && !force {
		return errors.Wrap(errors.ErrDuplicate, "app_state already set, use -f to overwrite")
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}
	doc["app_state"] = options
	if err := writeGenesis(genFile, doc); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)

	confFile := filepath.Join(home, ConfigFile)
	if _, err := os.Stat(confFile); os.IsNotExist(err) {
		if err := SaveConfig(home, DefaultConfig()); err != nil {
			return err
		}
		logger.Info("Default configuration written", "path", confFile)
	}
	return nil
}

func readGenesis(filename string) (GenesisDoc, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "genesis file, run tendermint init first: %s", err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return doc, nil
}

func writeGenesis(filename string, doc GenesisDoc) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(filename, out, 0600); err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	return nil
}
