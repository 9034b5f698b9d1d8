package sharded_storage

import (
	"fmt"
	"testing"

	"github.com/pingcap-incubator/minikv/kv/storage"
	"github.com/pingcap-incubator/minikv/kv/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ storage.Storage = new(ShardedStorage)

func TestShardedStorage(t *testing.T) {
	storagetest.RunAll(t, func() storage.Storage {
		s, err := NewShardedStorage(8)
		require.Nil(t, err)
		return s
	})
}

func TestSingleShard(t *testing.T) {
	storagetest.RunAll(t, func() storage.Storage {
		s, err := NewShardedStorage(1)
		require.Nil(t, err)
		return s
	})
}

func TestBadShardCount(t *testing.T) {
	for _, n := range []int{0, -4, 3, 12} {
		_, err := NewShardedStorage(n)
		assert.NotNil(t, err, "count %d", n)
	}
}

func TestKeysSpreadOverShards(t *testing.T) {
	s, err := NewShardedStorage(4)
	require.Nil(t, err)
	for i := 0; i < 256; i++ {
		require.Nil(t, s.Put(fmt.Sprintf("key%d", i), "v"))
	}
	used := 0
	for i := range s.shards {
		if len(s.shards[i].kv) > 0 {
			used++
		}
	}
	assert.True(t, used > 1)
	assert.Equal(t, 256, s.Len())
}
