// Package registry maps well-known service names to network addresses. A server binds its name
// when it starts serving and clients look the name up before dialing.
package registry

import (
	"context"
	"sync"

	"github.com/pingcap/errors"
)

// ErrNotBound is returned by Lookup when nothing is bound under the name.
var ErrNotBound = errors.New("registry: name not bound")

type Registry interface {
	// Bind binds name to addr, replacing any existing binding.
	Bind(ctx context.Context, name, addr string) error
	// Lookup returns the address bound to name.
	Lookup(ctx context.Context, name string) (string, error)
	// Unbind removes the binding of name. Unbinding an unbound name is not an error.
	Unbind(ctx context.Context, name string) error
	Close() error
}

// StaticRegistry is a Registry living in the current process only.
type StaticRegistry struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{names: make(map[string]string)}
}

func (r *StaticRegistry) Bind(_ context.Context, name, addr string) error {
	if name == "" {
		return errors.New("registry: empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[name] = addr
	return nil
}

func (r *StaticRegistry) Lookup(_ context.Context, name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	addr, ok := r.names[name]
	if !ok {
		return "", errors.Annotatef(ErrNotBound, "lookup %q", name)
	}
	return addr, nil
}

func (r *StaticRegistry) Unbind(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.names, name)
	return nil
}

func (r *StaticRegistry) Close() error {
	return nil
}
