package registry

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/pingcap/errors"
	"go.etcd.io/etcd/clientv3"
	"go.uber.org/zap"
)

const servicePrefix = "/minikv/services"

func serviceKey(name string) string {
	return path.Join(servicePrefix, name)
}

// EtcdRegistry keeps bindings in etcd. Each binding is attached to a lease that the registry keeps
// alive until Unbind or Close, so the bindings of a crashed server expire after the lease TTL.
type EtcdRegistry struct {
	client   *clientv3.Client
	leaseTTL int64
	logger   *zap.Logger

	mu       sync.Mutex
	bindings map[string]*binding
}

type binding struct {
	lease  clientv3.LeaseID
	cancel context.CancelFunc
}

// NewEtcdRegistry connects to the etcd cluster at endpoints.
func NewEtcdRegistry(endpoints []string, dialTimeout time.Duration, leaseTTL int64, logger *zap.Logger) (*EtcdRegistry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, errors.Annotatef(err, "connect to registry %v", endpoints)
	}
	return &EtcdRegistry{
		client:   client,
		leaseTTL: leaseTTL,
		logger:   logger,
		bindings: make(map[string]*binding),
	}, nil
}

func (r *EtcdRegistry) Bind(ctx context.Context, name, addr string) error {
	if name == "" {
		return errors.New("registry: empty name")
	}
	grant, err := r.client.Grant(ctx, r.leaseTTL)
	if err != nil {
		return errors.Annotatef(err, "grant lease for %q", name)
	}
	if _, err = r.client.Put(ctx, serviceKey(name), addr, clientv3.WithLease(grant.ID)); err != nil {
		return errors.Annotatef(err, "bind %q", name)
	}

	kaCtx, cancel := context.WithCancel(context.Background())
	ch, err := r.client.KeepAlive(kaCtx, grant.ID)
	if err != nil {
		cancel()
		return errors.Annotatef(err, "keep alive binding of %q", name)
	}
	go r.drainKeepAlive(name, ch)

	r.mu.Lock()
	old := r.bindings[name]
	r.bindings[name] = &binding{lease: grant.ID, cancel: cancel}
	r.mu.Unlock()

	// The key now belongs to the new lease, revoking the old one does not touch it.
	if old != nil {
		old.cancel()
		if _, err := r.client.Revoke(ctx, old.lease); err != nil {
			r.logger.Warn("revoke replaced lease failed", zap.String("name", name), zap.Error(err))
		}
	}
	r.logger.Info("service bound", zap.String("name", name), zap.String("addr", addr),
		zap.Int64("lease-ttl", r.leaseTTL))
	return nil
}

func (r *EtcdRegistry) drainKeepAlive(name string, ch <-chan *clientv3.LeaseKeepAliveResponse) {
	for range ch {
	}
	r.logger.Info("binding keepalive stopped", zap.String("name", name))
}

func (r *EtcdRegistry) Lookup(ctx context.Context, name string) (string, error) {
	resp, err := r.client.Get(ctx, serviceKey(name))
	if err != nil {
		return "", errors.Annotatef(err, "lookup %q", name)
	}
	if len(resp.Kvs) == 0 {
		return "", errors.Annotatef(ErrNotBound, "lookup %q", name)
	}
	return string(resp.Kvs[0].Value), nil
}

func (r *EtcdRegistry) Unbind(ctx context.Context, name string) error {
	r.mu.Lock()
	b := r.bindings[name]
	delete(r.bindings, name)
	r.mu.Unlock()

	if b == nil {
		_, err := r.client.Delete(ctx, serviceKey(name))
		return errors.Annotatef(err, "unbind %q", name)
	}
	b.cancel()
	// Revoking the lease deletes the key attached to it.
	if _, err := r.client.Revoke(ctx, b.lease); err != nil {
		return errors.Annotatef(err, "unbind %q", name)
	}
	r.logger.Info("service unbound", zap.String("name", name))
	return nil
}

// Close unbinds every name bound through this registry and closes the connection.
func (r *EtcdRegistry) Close() error {
	r.mu.Lock()
	names := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		names = append(names, name)
	}
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	for _, name := range names {
		if err := r.Unbind(ctx, name); err != nil {
			r.logger.Warn("unbind on close failed", zap.String("name", name), zap.Error(err))
		}
	}
	return errors.Trace(r.client.Close())
}
