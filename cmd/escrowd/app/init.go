package app

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/crypto"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/cash"
	"github.com/iov-one/weave-escrow/x/escrow"
	"github.com/stellar/go/exp/crypto/derivation"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Default amounts put into a freshly generated genesis.
const (
	genesisFunds   = 123456789
	genesisReserve = 1000
	genesisCallFee = 1
)

// GenInitOptions produces options for one rich account that also operates
// the escrow and collects remote call fees, to use for dev mode.
//
// An address can be given as the first argument. Otherwise a new key is
// generated and printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr weave.Address
	if len(args) > 0 {
		a, err := weave.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		addr = a
	} else {
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(keys)
	}

	type remoteOpts struct {
		CallFee          uint64        `json:"call_fee"`
		Collector        weave.Address `json:"collector"`
		MaxCallsPerBlock int32         `json:"max_calls_per_block"`
	}
	type escrowOpts struct {
		Operator weave.Address      `json:"operator"`
		Timeout  weave.UnixDuration `json:"timeout"`
		Reserve  uint64             `json:"reserve"`
	}
	opts := struct {
		Cash   []cash.GenesisAccount `json:"cash"`
		Asset  []interface{}         `json:"asset"`
		Escrow escrowOpts            `json:"escrow"`
		Remote remoteOpts            `json:"remote"`
	}{
		Cash:   []cash.GenesisAccount{{Address: addr, Amount: genesisFunds}},
		Asset:  []interface{}{},
		Escrow: escrowOpts{Operator: addr, Timeout: escrow.DefaultTimeout, Reserve: genesisReserve},
		Remote: remoteOpts{CallFee: genesisCallFee, Collector: addr},
	}
	return json.MarshalIndent(opts, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "escrow.db")
	}

	application, err := Application("escrowd", dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}

// DerivationPath is the bip44 path used to derive account keys from a seed.
const DerivationPath = "m/44'/234'/0'"

type output struct {
	Pubkey string `json:"pub_key"`
	Seed   string `json:"seed"`
	Path   string `json:"derivation_path"`
}

// GenerateCoinKey returns the address of a public key derived from a new
// random seed, along with a json representation of the seed that allows
// to recover the key.
func GenerateCoinKey() (weave.Address, string, error) {
	seed := make([]byte, 64)
	if _, err := rand.Read(seed); err != nil {
		return nil, "", errors.Wrap(errors.ErrHuman, err.Error())
	}
	privKey, err := DeriveKey(seed, DerivationPath)
	if err != nil {
		return nil, "", err
	}
	pubKey := privKey.PublicKey()

	out := output{
		Pubkey: hex.EncodeToString(pubKey),
		Seed:   hex.EncodeToString(seed),
		Path:   DerivationPath,
	}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return pubKey.Address(), string(keys), nil
}

// DeriveKey returns the ed25519 key found under given path of the seed.
func DeriveKey(seed []byte, path string) (crypto.PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return crypto.PrivateKeyFromSeed(k.Key), nil
}
