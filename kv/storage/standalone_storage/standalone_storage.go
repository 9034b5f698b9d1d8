package standalone_storage

import "sync"

// StandAloneStorage is an implementation of `Storage` for a single-node instance. All data lives in
// one in-memory map and every operation, reads included, runs under one mutex. This imposes a single
// total order over all operations from all callers, so the store is linearizable; the cost is that
// operations on disjoint keys never run in parallel.
type StandAloneStorage struct {
	mu sync.Mutex
	kv map[string]string
}

func NewStandAloneStorage() *StandAloneStorage {
	return &StandAloneStorage{
		kv: make(map[string]string),
	}
}

func (s *StandAloneStorage) Start() error {
	return nil
}

// Stop drops all entries, nothing outlives the process.
func (s *StandAloneStorage) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv = make(map[string]string)
	return nil
}

func (s *StandAloneStorage) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.kv[key]
	return value, ok, nil
}

func (s *StandAloneStorage) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = value
	return nil
}

func (s *StandAloneStorage) Delete(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.kv[key]
	if ok {
		delete(s.kv, key)
	}
	return ok, nil
}

func (s *StandAloneStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.kv)
}
