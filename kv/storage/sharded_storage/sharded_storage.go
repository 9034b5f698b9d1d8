package sharded_storage

import (
	"sync"

	"github.com/dgryski/go-farm"
	"github.com/pingcap/errors"
)

// ShardedStorage spreads keys over a fixed number of shards by fingerprint. Each shard is a map with
// its own mutex, so operations on one key are still linearizable while operations whose keys land in
// different shards run in parallel. There is no order between operations on different shards.
type ShardedStorage struct {
	shards []shard
	mask   uint64
}

type shard struct {
	mu sync.Mutex
	kv map[string]string
}

// NewShardedStorage creates a storage with count shards. count must be a positive power of two.
func NewShardedStorage(count int) (*ShardedStorage, error) {
	if count <= 0 || count&(count-1) != 0 {
		return nil, errors.Errorf("shard count must be a positive power of two, got %d", count)
	}
	s := &ShardedStorage{
		shards: make([]shard, count),
		mask:   uint64(count - 1),
	}
	for i := range s.shards {
		s.shards[i].kv = make(map[string]string)
	}
	return s, nil
}

func (s *ShardedStorage) shardFor(key string) *shard {
	return &s.shards[farm.Fingerprint64([]byte(key))&s.mask]
}

func (s *ShardedStorage) Start() error {
	return nil
}

func (s *ShardedStorage) Stop() error {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		sh.kv = make(map[string]string)
		sh.mu.Unlock()
	}
	return nil
}

func (s *ShardedStorage) Get(key string) (string, bool, error) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	value, ok := sh.kv[key]
	return value, ok, nil
}

func (s *ShardedStorage) Put(key, value string) error {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.kv[key] = value
	return nil
}

func (s *ShardedStorage) Delete(key string) (bool, error) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	_, ok := sh.kv[key]
	if ok {
		delete(sh.kv, key)
	}
	return ok, nil
}

// Len locks the shards one at a time, so the result is not a snapshot under concurrent writes.
func (s *ShardedStorage) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		n += len(sh.kv)
		sh.mu.Unlock()
	}
	return n
}
