package experiment

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	conf := Default()
	require.Equal(t, 10*time.Millisecond, conf.TickInterval())
	require.Equal(t, "mem", conf.Flash)
	require.True(t, conf.Interactive)
}

func TestLoadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "sftest")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	saved := defaultConfig
	defer func() { defaultConfig = saved }()

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(
		"tick_ms: 20\nflash: tcp://localhost:7320\n"), 0644))
	require.NoError(t, LoadFile(path))

	conf := Default()
	require.Equal(t, 20*time.Millisecond, conf.TickInterval())
	require.Equal(t, "tcp://localhost:7320", conf.Flash)
	// Fields the file omits keep their defaults.
	require.True(t, conf.Interactive)

	require.Error(t, LoadFile(filepath.Join(dir, "missing.yaml")))
}
