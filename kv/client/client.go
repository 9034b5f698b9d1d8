package client

import (
	"context"
	"fmt"
	"time"

	"github.com/pingcap-incubator/minikv/kv/registry"
	"github.com/pingcap-incubator/minikv/proto/pkg/kvstorepb"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// ConnectionError is returned when the service cannot be resolved or dialed.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.Target, e.Err)
}

// IsConnectionError reports whether err was caused by a ConnectionError.
func IsConnectionError(err error) bool {
	_, ok := errors.Cause(err).(*ConnectionError)
	return ok
}

type Options struct {
	ClientID string
	// DialTimeout bounds resolving plus dialing. Zero means no bound beyond ctx.
	DialTimeout time.Duration
	// CallTimeout bounds every call. Zero means no bound beyond ctx.
	CallTimeout time.Duration
	Logger      *zap.Logger
	DialOptions []grpc.DialOption
}

func (o *Options) adjust() {
	if o.ClientID == "" {
		o.ClientID = DefaultClientID()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

type GetResult struct {
	RequestID string
	Value     string
	// Found is false when the key has no entry.
	Found bool
}

type PutResult struct {
	RequestID string
	Success   bool
}

type DeleteResult struct {
	RequestID string
	// Found reports whether the key was present before the delete.
	Found bool
}

// Client calls a minikv server. It is safe for concurrent use.
type Client struct {
	addr   string
	conn   *grpc.ClientConn
	kv     kvstorepb.KeyValueClient
	ids    *RequestIDGenerator
	opts   Options
	logger *zap.Logger
}

// Dial resolves serviceName through reg and connects to the address bound to it.
func Dial(ctx context.Context, reg registry.Registry, serviceName string, opts Options) (*Client, error) {
	if opts.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.DialTimeout)
		defer cancel()
	}
	addr, err := reg.Lookup(ctx, serviceName)
	if err != nil {
		return nil, errors.WithStack(&ConnectionError{Target: serviceName, Err: err})
	}
	return DialAddr(ctx, addr, opts)
}

// DialAddr connects to a server at addr directly, without going through a registry.
func DialAddr(ctx context.Context, addr string, opts Options) (*Client, error) {
	opts.adjust()
	if opts.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.DialTimeout)
		defer cancel()
	}
	dialOpts := []grpc.DialOption{grpc.WithInsecure(), grpc.WithBlock()}
	dialOpts = append(dialOpts, opts.DialOptions...)
	conn, err := grpc.DialContext(ctx, addr, dialOpts...)
	if err != nil {
		return nil, errors.WithStack(&ConnectionError{Target: addr, Err: err})
	}
	opts.Logger.Info("connected to kvstore", zap.String("addr", addr), zap.String("client-id", opts.ClientID))
	return &Client{
		addr:   addr,
		conn:   conn,
		kv:     kvstorepb.NewKeyValueClient(conn),
		ids:    NewRequestIDGenerator(opts.ClientID),
		opts:   opts,
		logger: opts.Logger,
	}, nil
}

func (c *Client) ClientID() string {
	return c.opts.ClientID
}

func (c *Client) Addr() string {
	return c.addr
}

func (c *Client) Close() error {
	return errors.Trace(c.conn.Close())
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.CallTimeout > 0 {
		return context.WithTimeout(ctx, c.opts.CallTimeout)
	}
	return context.WithCancel(ctx)
}

func (c *Client) Get(ctx context.Context, key string) (GetResult, error) {
	requestID := c.ids.Next()
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.kv.GetValue(ctx, &kvstorepb.GetValueRequest{
		Key:       key,
		RequestId: requestID,
		ClientId:  c.opts.ClientID,
	})
	if err != nil {
		return GetResult{RequestID: requestID}, errors.Annotatef(err, "get %q (request %s)", key, requestID)
	}
	return GetResult{
		RequestID: requestID,
		Value:     resp.GetValue(),
		Found:     !resp.GetNotFound(),
	}, nil
}

func (c *Client) Put(ctx context.Context, key, value string) (PutResult, error) {
	requestID := c.ids.Next()
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.kv.PutValue(ctx, &kvstorepb.PutValueRequest{
		Key:       key,
		Value:     value,
		RequestId: requestID,
		ClientId:  c.opts.ClientID,
	})
	if err != nil {
		return PutResult{RequestID: requestID}, errors.Annotatef(err, "put %q (request %s)", key, requestID)
	}
	return PutResult{RequestID: requestID, Success: resp.GetSuccess()}, nil
}

func (c *Client) Delete(ctx context.Context, key string) (DeleteResult, error) {
	requestID := c.ids.Next()
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.kv.DeleteValue(ctx, &kvstorepb.DeleteValueRequest{
		Key:       key,
		RequestId: requestID,
		ClientId:  c.opts.ClientID,
	})
	if err != nil {
		return DeleteResult{RequestID: requestID}, errors.Annotatef(err, "delete %q (request %s)", key, requestID)
	}
	return DeleteResult{RequestID: requestID, Found: resp.GetFound()}, nil
}
