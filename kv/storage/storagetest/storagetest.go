// Package storagetest holds behaviour tests shared by every storage.Storage implementation.
package storagetest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pingcap-incubator/minikv/kv/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunAll runs every behaviour test against storages created by newStorage.
func RunAll(t *testing.T, newStorage func() storage.Storage) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Storage)
	}{
		{"GetAfterPut", testGetAfterPut},
		{"GetNotFound", testGetNotFound},
		{"NullValueIsNotNotFound", testNullValueIsNotNotFound},
		{"EmptyValue", testEmptyValue},
		{"Overwrite", testOverwrite},
		{"PutIdempotent", testPutIdempotent},
		{"Delete", testDelete},
		{"EmptyKey", testEmptyKey},
		{"ConcurrentDisjointPuts", testConcurrentDisjointPuts},
		{"ConcurrentSameKey", testConcurrentSameKey},
		{"Stop", testStop},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := newStorage()
			require.Nil(t, s.Start())
			defer s.Stop()
			tt.fn(t, s)
		})
	}
}

func testGetAfterPut(t *testing.T, s storage.Storage) {
	require.Nil(t, s.Put("key1", "1"))
	value, found, err := s.Get("key1")
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", value)
}

func testGetNotFound(t *testing.T, s storage.Storage) {
	value, found, err := s.Get("missing")
	require.Nil(t, err)
	assert.False(t, found)
	assert.Equal(t, "", value)
}

func testNullValueIsNotNotFound(t *testing.T, s storage.Storage) {
	require.Nil(t, s.Put("k", "null"))
	value, found, err := s.Get("k")
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, "null", value)
}

func testEmptyValue(t *testing.T, s storage.Storage) {
	require.Nil(t, s.Put("k", ""))
	value, found, err := s.Get("k")
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, "", value)
}

func testOverwrite(t *testing.T, s storage.Storage) {
	require.Nil(t, s.Put("k", "a"))
	require.Nil(t, s.Put("k", "b"))
	value, found, err := s.Get("k")
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, "b", value)
	assert.Equal(t, 1, s.Len())
}

func testPutIdempotent(t *testing.T, s storage.Storage) {
	require.Nil(t, s.Put("k", "v"))
	value1, _, _ := s.Get("k")
	len1 := s.Len()
	require.Nil(t, s.Put("k", "v"))
	value2, _, _ := s.Get("k")
	assert.Equal(t, value1, value2)
	assert.Equal(t, len1, s.Len())
}

func testDelete(t *testing.T, s storage.Storage) {
	require.Nil(t, s.Put("key1", "1"))

	found, err := s.Delete("key1")
	require.Nil(t, err)
	assert.True(t, found)

	_, found, err = s.Get("key1")
	require.Nil(t, err)
	assert.False(t, found)

	found, err = s.Delete("key1")
	require.Nil(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, s.Len())
}

func testEmptyKey(t *testing.T, s storage.Storage) {
	_, found, err := s.Get("")
	require.Nil(t, err)
	assert.False(t, found)

	require.Nil(t, s.Put("", "v"))
	value, found, err := s.Get("")
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", value)
	assert.Equal(t, 1, s.Len())

	found, err = s.Delete("")
	require.Nil(t, err)
	assert.True(t, found)
	_, found, err = s.Get("")
	require.Nil(t, err)
	assert.False(t, found)
	found, err = s.Delete("")
	require.Nil(t, err)
	assert.False(t, found)
}

func testConcurrentDisjointPuts(t *testing.T, s storage.Storage) {
	const (
		workers = 16
		perWork = 200
	)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWork; i++ {
				key := fmt.Sprintf("w%d-k%d", w, i)
				assert.Nil(t, s.Put(key, key))
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, workers*perWork, s.Len())
	for w := 0; w < workers; w++ {
		for i := 0; i < perWork; i++ {
			key := fmt.Sprintf("w%d-k%d", w, i)
			value, found, err := s.Get(key)
			require.Nil(t, err)
			require.True(t, found, key)
			require.Equal(t, key, value)
		}
	}
}

// Every writer puts then deletes the same key; the key must end up absent and no call may fail.
func testConcurrentSameKey(t *testing.T, s storage.Storage) {
	const workers = 8
	var wg sync.WaitGroup
	deleted := make(chan bool, workers*100)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				assert.Nil(t, s.Put("shared", fmt.Sprint(w)))
				found, err := s.Delete("shared")
				assert.Nil(t, err)
				deleted <- found
			}
		}(w)
	}
	wg.Wait()
	close(deleted)

	hits := 0
	for found := range deleted {
		if found {
			hits++
		}
	}
	assert.True(t, hits > 0)
	_, found, err := s.Get("shared")
	require.Nil(t, err)
	assert.False(t, found)
}

func testStop(t *testing.T, s storage.Storage) {
	require.Nil(t, s.Put("k", "v"))
	require.Nil(t, s.Stop())
	assert.Equal(t, 0, s.Len())
}
