package crypto

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	key := PrivateKeyFromSeed(make([]byte, 32))
	pub := key.PublicKey()

	msg := []byte("initiate purchase")
	sig := key.Sign(msg)

	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("approve purchase"), sig))
	assert.False(t, GenPrivateKey().PublicKey().Verify(msg, sig))
	assert.False(t, PublicKey([]byte("short")).Verify(msg, sig))

	require.NoError(t, pub.Condition().Validate())
	assert.Equal(t, pub.Condition().Address(), pub.Address())
}

func TestKeyFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "keys")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	key := GenPrivateKey()
	path := filepath.Join(dir, "key.priv")
	require.NoError(t, SavePrivateKey(key, path))

	loaded, err := LoadPrivateKey(path)
	require.NoError(t, err)
	assert.Equal(t, key, loaded)

	require.NoError(t, ioutil.WriteFile(path, []byte("not hex"), 0600))
	_, err = LoadPrivateKey(path)
	assert.Error(t, err)
}
