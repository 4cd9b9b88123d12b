package server

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/weave-escrow/errors"
	amino "github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/blockchain"
	dbm "github.com/tendermint/tendermint/libs/db"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
)

const (
	flagHeight = "height"
)

var cdc = amino.NewCodec()

func init() {
	ctypes.RegisterAmino(cdc)
}

func parseGetBlockArgs(args []string) (string, int64, error) {
	if len(args) == 0 {
		return "", 0, errors.Wrap(errors.ErrInput, "usage: getblock <path to blockstore.db> [-height=H]")
	}
	var height int64
	getBlockFlags := flag.NewFlagSet("getblock", flag.ContinueOnError)
	getBlockFlags.Int64Var(&height, flagHeight, 0, "height of the block to extract (default latest)")
	err := getBlockFlags.Parse(args[1:])
	return args[0], height, err
}

// GetBlockCmd extracts a block from a blockstore.db and writes it as json
// to stdout. It takes the last block unless -height is explicitly specified.
// Useful to inspect the remote call tags of an end block.
func GetBlockCmd(args []string) error {
	dbPath, height, err := parseGetBlockArgs(args)
	if err != nil {
		return err
	}
	db, err := openDb(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	store := blockchain.NewBlockStore(db)
	if height == 0 {
		height = store.Height()
	}
	block := store.LoadBlock(height)
	if block == nil {
		return errors.Wrapf(errors.ErrNotFound, "no block for height %d", height)
	}
	js, err := cdc.MarshalJSONIndent(block, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	_, err = fmt.Fprintln(os.Stdout, string(js))
	return err
}

// openDb opens a leveldb database from its directory, that must end with
// ".db".
func openDb(dir string) (dbm.DB, error) {
	dir = strings.TrimSuffix(dir, "/")
	if !strings.HasSuffix(dir, ".db") {
		return nil, errors.Wrap(errors.ErrInput, "database directory must end with .db")
	}
	dir = strings.TrimSuffix(dir, ".db")
	if _, err := os.Stat(dir + ".db"); err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "database %s.db", dir)
	}
	db, err := dbm.NewGoLevelDB(filepath.Base(dir), filepath.Dir(dir))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return db, nil
}
