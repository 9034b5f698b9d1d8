package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	dir, err := ioutil.TempDir("", "minikv_config")
	require.Nil(t, err)
	path := filepath.Join(dir, "minikv.toml")
	require.Nil(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.Nil(t, NewDefaultConfig().Validate())
	require.Nil(t, NewTestConfig().Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfigFile(t, `
[server]
addr = "127.0.0.1:30160"
service-name = "kvstore-test"
keepalive-min-time = "5s"
max-recv-msg-size = "4MiB"

[storage]
engine = "sharded"
shard-count = 8

[registry]
endpoints = ["http://127.0.0.1:3379"]
embed = false

[log]
level = "debug"

unknown-item = 1
`)
	defer os.RemoveAll(filepath.Dir(path))

	c, err := LoadFile(path)
	require.Nil(t, err)
	require.Nil(t, c.Validate())

	assert.Equal(t, "127.0.0.1:30160", c.Server.Addr)
	assert.Equal(t, "kvstore-test", c.Server.ServiceName)
	assert.Equal(t, 5*time.Second, c.Server.KeepaliveMinTime.Duration)
	assert.Equal(t, defaultGracefulStop, c.Server.GracefulStopTimeout.Duration)
	assert.Equal(t, EngineSharded, c.Storage.Engine)
	assert.Equal(t, 8, c.Storage.ShardCount)
	assert.Equal(t, []string{"http://127.0.0.1:3379"}, c.Registry.Endpoints)
	assert.False(t, c.Registry.Embed)
	assert.Equal(t, defaultLeaseTTL, c.Registry.LeaseTTL)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Len(t, c.WarningMsgs, 1)

	n, err := c.MaxRecvMsgBytes()
	require.Nil(t, err)
	assert.Equal(t, 4*1024*1024, n)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/minikv.toml")
	assert.NotNil(t, err)
}

func TestValidate(t *testing.T) {
	cases := []func(c *Config){
		func(c *Config) { c.Server.Addr = "no-port" },
		func(c *Config) { c.Server.ServiceName = "" },
		func(c *Config) { c.Server.MaxRecvMsgSize = "lots" },
		func(c *Config) { c.Storage.Engine = "badger" },
		func(c *Config) { c.Storage.Engine = EngineSharded; c.Storage.ShardCount = 12 },
		func(c *Config) { c.Registry.Endpoints = nil },
		func(c *Config) { c.Registry.LeaseTTL = -1 },
	}
	for i, breakIt := range cases {
		c := NewDefaultConfig()
		breakIt(c)
		assert.NotNil(t, c.Validate(), "case %d", i)
	}
}

func TestAdjust(t *testing.T) {
	c := &Config{}
	c.Adjust()
	assert.Equal(t, defaultAddr, c.Server.Addr)
	assert.Equal(t, EngineStandalone, c.Storage.Engine)
	assert.Equal(t, defaultShardCount, c.Storage.ShardCount)
	assert.Equal(t, []string{defaultRegistryEndpoint}, c.Registry.Endpoints)
	assert.Equal(t, "text", c.Log.Format)
	require.Nil(t, c.Validate())
}

func TestSetupLogger(t *testing.T) {
	c := NewTestConfig()
	require.Nil(t, c.SetupLogger())
	assert.NotNil(t, c.GetZapLogger())
	assert.NotNil(t, c.GetZapLogProperties())
}
