package client

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pingcap-incubator/minikv/kv/registry"
	"github.com/pingcap-incubator/minikv/kv/server/servertest"
	"github.com/pingcap-incubator/minikv/kv/storage/sharded_storage"
	"github.com/pingcap-incubator/minikv/kv/storage/standalone_storage"
	"github.com/pingcap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func dialTestServer(t *testing.T, ts *servertest.TestServer, clientID string) *Client {
	c, err := Dial(context.Background(), ts.Registry, servertest.ServiceName, Options{
		ClientID:    clientID,
		DialTimeout: 5 * time.Second,
		CallTimeout: 5 * time.Second,
		DialOptions: []grpc.DialOption{ts.DialOption()},
	})
	require.Nil(t, err)
	return c
}

func TestPutGetDeleteScenario(t *testing.T) {
	ts := servertest.Start(t, standalone_storage.NewStandAloneStorage())
	defer ts.Stop()
	c := dialTestServer(t, ts, "client-1")
	defer c.Close()
	ctx := context.Background()

	bound, err := ts.Registry.Lookup(ctx, servertest.ServiceName)
	require.Nil(t, err)
	assert.Equal(t, bound, c.Addr())
	assert.Equal(t, "client-1", c.ClientID())

	put, err := c.Put(ctx, "key1", "1")
	require.Nil(t, err)
	assert.True(t, put.Success)

	get, err := c.Get(ctx, "key1")
	require.Nil(t, err)
	assert.True(t, get.Found)
	assert.Equal(t, "1", get.Value)

	del, err := c.Delete(ctx, "key1")
	require.Nil(t, err)
	assert.True(t, del.Found)

	get, err = c.Get(ctx, "key1")
	require.Nil(t, err)
	assert.False(t, get.Found)

	del, err = c.Delete(ctx, "key1")
	require.Nil(t, err)
	assert.False(t, del.Found)
}

func TestNullValueOverTheWire(t *testing.T) {
	ts := servertest.Start(t, standalone_storage.NewStandAloneStorage())
	defer ts.Stop()
	c := dialTestServer(t, ts, "client-1")
	defer c.Close()
	ctx := context.Background()

	_, err := c.Put(ctx, "k", "null")
	require.Nil(t, err)
	get, err := c.Get(ctx, "k")
	require.Nil(t, err)
	assert.True(t, get.Found)
	assert.Equal(t, "null", get.Value)

	_, err = c.Put(ctx, "empty", "")
	require.Nil(t, err)
	get, err = c.Get(ctx, "empty")
	require.Nil(t, err)
	assert.True(t, get.Found)
	assert.Equal(t, "", get.Value)
}

func TestEmptyKeyOverTheWire(t *testing.T) {
	ts := servertest.Start(t, standalone_storage.NewStandAloneStorage())
	defer ts.Stop()
	c := dialTestServer(t, ts, "client-1")
	defer c.Close()
	ctx := context.Background()

	put, err := c.Put(ctx, "", "v")
	require.Nil(t, err)
	assert.True(t, put.Success)
	get, err := c.Get(ctx, "")
	require.Nil(t, err)
	assert.True(t, get.Found)
	assert.Equal(t, "v", get.Value)
	del, err := c.Delete(ctx, "")
	require.Nil(t, err)
	assert.True(t, del.Found)
}

// readOnlyStorage rejects every write.
type readOnlyStorage struct {
	*standalone_storage.StandAloneStorage
}

func (s readOnlyStorage) Put(key, value string) error {
	return errors.Errorf("read only, refusing %q", key)
}

func TestOperationError(t *testing.T) {
	ts := servertest.Start(t, readOnlyStorage{standalone_storage.NewStandAloneStorage()})
	defer ts.Stop()
	c := dialTestServer(t, ts, "client-1")
	defer c.Close()

	res, err := c.Put(context.Background(), "k", "v")
	require.NotNil(t, err)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.RequestID)
	assert.Equal(t, codes.Internal, status.Code(errors.Cause(err)))
	assert.False(t, IsConnectionError(err))
}

func TestRequestContextReachesServer(t *testing.T) {
	ts := servertest.Start(t, standalone_storage.NewStandAloneStorage())
	defer ts.Stop()
	c := dialTestServer(t, ts, "client-7")
	defer c.Close()

	put, err := c.Put(context.Background(), "k", "v")
	require.Nil(t, err)

	entries := ts.Logs.FilterMessage("request finished").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, put.RequestID, fields["request-id"])
	assert.Equal(t, "client-7", fields["client-id"])
}

func TestConcurrentDisjointPuts(t *testing.T) {
	for name, ts := range map[string]*servertest.TestServer{
		"standalone": servertest.Start(t, standalone_storage.NewStandAloneStorage()),
		"sharded":    servertest.Start(t, mustSharded(t, 16)),
	} {
		t.Run(name, func(t *testing.T) {
			defer ts.Stop()
			const (
				callers = 8
				perCall = 50
			)
			clients := make([]*Client, callers)
			for i := range clients {
				clients[i] = dialTestServer(t, ts, fmt.Sprintf("client-%d", i))
				defer clients[i].Close()
			}
			var wg sync.WaitGroup
			for i, c := range clients {
				wg.Add(1)
				go func(i int, c *Client) {
					defer wg.Done()
					for j := 0; j < perCall; j++ {
						key := fmt.Sprintf("c%d-k%d", i, j)
						_, err := c.Put(context.Background(), key, key)
						assert.Nil(t, err)
					}
				}(i, c)
			}
			wg.Wait()

			assert.Equal(t, callers*perCall, ts.Server.Len())
			c := dialTestServer(t, ts, "checker")
			defer c.Close()
			for i := 0; i < callers; i++ {
				for j := 0; j < perCall; j++ {
					key := fmt.Sprintf("c%d-k%d", i, j)
					get, err := c.Get(context.Background(), key)
					require.Nil(t, err)
					require.True(t, get.Found, key)
					require.Equal(t, key, get.Value)
				}
			}
		})
	}
}

func mustSharded(t *testing.T, n int) *sharded_storage.ShardedStorage {
	s, err := sharded_storage.NewShardedStorage(n)
	require.Nil(t, err)
	return s
}

func TestDialUnboundName(t *testing.T) {
	_, err := Dial(context.Background(), registry.NewStaticRegistry(), "kvstore", Options{})
	require.NotNil(t, err)
	assert.True(t, IsConnectionError(err))
	assert.Equal(t, registry.ErrNotBound, errors.Cause(errors.Cause(err).(*ConnectionError).Err))
}

func TestDialUnreachable(t *testing.T) {
	_, err := DialAddr(context.Background(), "127.0.0.1:1", Options{DialTimeout: 200 * time.Millisecond})
	require.NotNil(t, err)
	assert.True(t, IsConnectionError(err))
}

func TestRequestIDsAreUnique(t *testing.T) {
	g := NewRequestIDGenerator("c")
	const (
		workers = 8
		perWork = 1000
	)
	ids := make(chan string, workers*perWork)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWork; j++ {
				ids <- g.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, workers*perWork)
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWork)
}

func TestDefaultClientID(t *testing.T) {
	assert.NotEmpty(t, DefaultClientID())
}
