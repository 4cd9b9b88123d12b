package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	home, err := ioutil.TempDir("", "escrowd-config")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	conf, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), conf)

	want := Config{Bind: "unix:///tmp/escrowd.sock", Debug: true}
	require.NoError(t, SaveConfig(home, want))
	conf, err = LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, want, conf)

	conf, err = parseFlags(conf, []string{"-metrics", "localhost:9000", "-debug=false"})
	require.NoError(t, err)
	assert.Equal(t, Config{Bind: "unix:///tmp/escrowd.sock", Metrics: "localhost:9000"}, conf)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	home, err := ioutil.TempDir("", "escrowd-config")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	raw := []byte("bind = \"tcp://localhost:1\"\nfee = 4\n")
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, ConfigFile), raw, 0600))
	_, err = LoadConfig(home)
	assert.True(t, errors.ErrInput.Is(err))
}
