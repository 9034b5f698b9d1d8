package registry

import (
	"context"
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/pingcap-incubator/minikv/kv/config"
	"github.com/pingcap-incubator/minikv/kv/util/tempurl"
	"github.com/pingcap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/etcd/embed"
)

func testRegistry(t *testing.T, r Registry) {
	ctx := context.Background()

	_, err := r.Lookup(ctx, "kvstore")
	assert.Equal(t, ErrNotBound, errors.Cause(err))

	require.Nil(t, r.Bind(ctx, "kvstore", "127.0.0.1:20160"))
	addr, err := r.Lookup(ctx, "kvstore")
	require.Nil(t, err)
	assert.Equal(t, "127.0.0.1:20160", addr)

	// Rebind replaces the old address.
	require.Nil(t, r.Bind(ctx, "kvstore", "127.0.0.1:20161"))
	addr, err = r.Lookup(ctx, "kvstore")
	require.Nil(t, err)
	assert.Equal(t, "127.0.0.1:20161", addr)

	require.Nil(t, r.Unbind(ctx, "kvstore"))
	_, err = r.Lookup(ctx, "kvstore")
	assert.Equal(t, ErrNotBound, errors.Cause(err))
	require.Nil(t, r.Unbind(ctx, "kvstore"))

	assert.NotNil(t, r.Bind(ctx, "", "127.0.0.1:1"))
}

func TestStaticRegistry(t *testing.T) {
	r := NewStaticRegistry()
	testRegistry(t, r)
	require.Nil(t, r.Close())
}

func newTestRegistryConfig(t *testing.T) *config.RegistryConfig {
	dir, err := ioutil.TempDir("", "minikv_registry")
	require.Nil(t, err)
	conf := config.NewTestConfig().Registry
	conf.Name = "test_registry"
	conf.DataDir = dir
	conf.Endpoints = []string{tempurl.Alloc()}
	conf.PeerURLs = tempurl.Alloc()
	conf.LeaseTTL = 5
	return &conf
}

func startTestEtcd(t *testing.T) (*config.RegistryConfig, *embed.Etcd) {
	conf := newTestRegistryConfig(t)
	etcd, err := StartEmbedEtcd(conf, nil)
	require.Nil(t, err)
	return conf, etcd
}

func TestEtcdRegistry(t *testing.T) {
	conf, etcd := startTestEtcd(t)
	defer os.RemoveAll(conf.DataDir)
	defer etcd.Close()

	r, err := NewEtcdRegistry(conf.Endpoints, conf.DialTimeout.Duration, conf.LeaseTTL, nil)
	require.Nil(t, err)
	testRegistry(t, r)
	require.Nil(t, r.Close())
}

func TestEtcdRegistryVisibleToOtherClients(t *testing.T) {
	conf, etcd := startTestEtcd(t)
	defer os.RemoveAll(conf.DataDir)
	defer etcd.Close()
	ctx := context.Background()

	server, err := NewEtcdRegistry(conf.Endpoints, conf.DialTimeout.Duration, conf.LeaseTTL, nil)
	require.Nil(t, err)
	client, err := NewEtcdRegistry(conf.Endpoints, conf.DialTimeout.Duration, conf.LeaseTTL, nil)
	require.Nil(t, err)
	defer client.Close()

	require.Nil(t, server.Bind(ctx, "kvstore", "127.0.0.1:20160"))
	addr, err := client.Lookup(ctx, "kvstore")
	require.Nil(t, err)
	assert.Equal(t, "127.0.0.1:20160", addr)

	// The binding outlives a lease TTL while the server keeps it alive.
	time.Sleep(time.Duration(conf.LeaseTTL+1) * time.Second)
	addr, err = client.Lookup(ctx, "kvstore")
	require.Nil(t, err)
	assert.Equal(t, "127.0.0.1:20160", addr)

	// Closing the server side releases its bindings.
	require.Nil(t, server.Close())
	_, err = client.Lookup(ctx, "kvstore")
	assert.Equal(t, ErrNotBound, errors.Cause(err))
}

func TestGenEmbedEtcdConfig(t *testing.T) {
	conf := config.NewDefaultConfig().Registry
	cfg, err := genEmbedEtcdConfig(&conf)
	require.Nil(t, err)
	assert.Equal(t, "http://127.0.0.1:2379", cfg.LCUrls[0].String())
	assert.Equal(t, "http://127.0.0.1:2380", cfg.LPUrls[0].String())
	assert.Equal(t, "minikv-registry=http://127.0.0.1:2380", cfg.InitialCluster)
}
