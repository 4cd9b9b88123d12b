package orm

import (
	"testing"

	"github.com/iov-one/weave-escrow/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("cnts", "id")

	v, _, err := s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	first, err := s.NextVal(db)
	require.NoError(t, err)
	second, err := s.NextVal(db)
	require.NoError(t, err)
	assert.Equal(t, EncodeSequence(1), first)
	assert.Equal(t, EncodeSequence(2), second)

	n, err := s.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// sequences with different names do not interfere
	other := NewSequence("cnts", "other")
	n, err = other.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.NoError(t, ValidateSequence(first))
	assert.Error(t, ValidateSequence(nil))
	assert.Error(t, ValidateSequence([]byte{1, 2}))
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		end    []byte
	}{
		"empty":    {nil, nil},
		"simple":   {[]byte("ab"), []byte("ac")},
		"overflow": {[]byte{1, 0xff}, []byte{2, 0}},
		"no end":   {[]byte{0xff, 0xff}, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.end, end)
		})
	}
}
