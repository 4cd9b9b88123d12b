package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges
func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	// make sure the btree is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assertGetHas(t, cache, k2, nil, false)
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assertGetHas(t, base, k, v, true)
	assertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assertGetHas(t, base, k3, nil, false)

	// and commit another
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assertGetHas(t, c3, k, nil, false)
	assertGetHas(t, base, k, v, true)
	require.NoError(t, c3.Write())

	// make sure it commits proper
	assertGetHas(t, base, k, nil, false)
	assertGetHas(t, base, k2, v2, true)
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte("base")))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache")))
	require.NoError(t, cache.Set([]byte("c"), []byte("cache")))
	require.NoError(t, cache.Delete([]byte("e")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"all": {
			want: []Model{
				{Key: []byte("a"), Value: []byte("base")},
				{Key: []byte("b"), Value: []byte("cache")},
				{Key: []byte("c"), Value: []byte("cache")},
				{Key: []byte("g"), Value: []byte("base")},
			},
		},
		"range": {
			start: []byte("b"),
			end:   []byte("g"),
			want: []Model{
				{Key: []byte("b"), Value: []byte("cache")},
				{Key: []byte("c"), Value: []byte("cache")},
			},
		},
		"open start": {
			end: []byte("b"),
			want: []Model{
				{Key: []byte("a"), Value: []byte("base")},
			},
		},
		"open end reverse": {
			start:   []byte("c"),
			reverse: true,
			want: []Model{
				{Key: []byte("g"), Value: []byte("base")},
				{Key: []byte("c"), Value: []byte("cache")},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var it Iterator
			var err error
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			got, err := ReadAll(it)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLogableStore(t *testing.T) {
	kv, ops := LogableStore()
	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	require.NoError(t, kv.Delete([]byte("b")))

	got := ops.ShowOps()
	require.Len(t, got, 2)
	assert.True(t, got[0].IsSetOp())
	assert.Equal(t, []byte("a"), got[0].Key())
	assert.Equal(t, []byte("1"), got[0].Value())
	assert.False(t, got[1].IsSetOp())
	assert.Equal(t, []byte("b"), got[1].Key())
}
