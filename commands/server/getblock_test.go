package server

import (
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

func TestParseGetBlockArgs(t *testing.T) {
	path, height, err := parseGetBlockArgs([]string{"data/blockstore.db", "-height=7"})
	assert.Nil(t, err)
	assert.Equal(t, "data/blockstore.db", path)
	assert.Equal(t, int64(7), height)

	_, height, err = parseGetBlockArgs([]string{"data/blockstore.db"})
	assert.Nil(t, err)
	assert.Equal(t, int64(0), height)

	_, _, err = parseGetBlockArgs(nil)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestOpenDb(t *testing.T) {
	_, err := openDb("/tmp/blockstore")
	assert.IsErr(t, errors.ErrInput, err)

	_, err = openDb("/tmp/escrowd-does-not-exist/blockstore.db/")
	assert.IsErr(t, errors.ErrNotFound, err)
}
