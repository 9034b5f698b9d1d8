package standalone_storage

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pingcap-incubator/minikv/kv/storage"
	"github.com/pingcap-incubator/minikv/kv/storage/storagetest"
	"github.com/stretchr/testify/assert"
)

var _ storage.Storage = new(StandAloneStorage)

func TestStandAloneStorage(t *testing.T) {
	storagetest.RunAll(t, func() storage.Storage {
		return NewStandAloneStorage()
	})
}

// A reader that observes a completed put must never see an older state afterwards.
func TestReadYourCompletedWrites(t *testing.T) {
	s := NewStandAloneStorage()
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", w)
			for i := 0; i < 500; i++ {
				value := fmt.Sprint(i)
				assert.Nil(t, s.Put(key, value))
				got, found, err := s.Get(key)
				if !assert.Nil(t, err) || !assert.True(t, found) {
					return
				}
				assert.Equal(t, value, got)
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 4, s.Len())
}
