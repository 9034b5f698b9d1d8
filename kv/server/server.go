package server

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pingcap-incubator/minikv/kv/storage"
	"github.com/pingcap-incubator/minikv/proto/pkg/kvstorepb"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ kvstorepb.KeyValueServer = new(Server)

const (
	opGet    = "GetValue"
	opPut    = "PutValue"
	opDelete = "DeleteValue"
)

// Server is a minikv server, it 'faces outwards', serving the KeyValue gRPC service on top of a
// Storage. Every call is traced to the logger before and after it reaches the storage.
type Server struct {
	storage storage.Storage
	logger  *zap.Logger
}

func NewServer(storage storage.Storage, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		storage: storage,
		logger:  logger,
	}
}

// Len returns the number of entries in the underlying storage.
func (server *Server) Len() int {
	return server.storage.Len()
}

// The below functions are Server's gRPC API (implements KeyValueServer).

func (server *Server) GetValue(ctx context.Context, req *kvstorepb.GetValueRequest) (*kvstorepb.GetValueResponse, error) {
	c := server.startCall(ctx, opGet, req.GetRequestId(), req.GetClientId(),
		zap.String("key", req.GetKey()))

	value, found, err := server.storage.Get(req.GetKey())
	if err != nil {
		return nil, c.fail(err)
	}
	if found {
		c.done(zap.String("value", value), zap.Bool("not-found", false))
	} else {
		c.done(zap.Bool("not-found", true))
	}
	return &kvstorepb.GetValueResponse{
		Value:    value,
		NotFound: !found,
	}, nil
}

func (server *Server) PutValue(ctx context.Context, req *kvstorepb.PutValueRequest) (*kvstorepb.PutValueResponse, error) {
	c := server.startCall(ctx, opPut, req.GetRequestId(), req.GetClientId(),
		zap.String("key", req.GetKey()), zap.String("value", req.GetValue()))

	if err := server.storage.Put(req.GetKey(), req.GetValue()); err != nil {
		return nil, c.fail(err)
	}
	c.done(zap.Bool("success", true))
	return &kvstorepb.PutValueResponse{Success: true}, nil
}

func (server *Server) DeleteValue(ctx context.Context, req *kvstorepb.DeleteValueRequest) (*kvstorepb.DeleteValueResponse, error) {
	c := server.startCall(ctx, opDelete, req.GetRequestId(), req.GetClientId(),
		zap.String("key", req.GetKey()))

	found, err := server.storage.Delete(req.GetKey())
	if err != nil {
		return nil, c.fail(err)
	}
	c.done(zap.Bool("found", found))
	return &kvstorepb.DeleteValueResponse{Found: found}, nil
}

// call is the tracing state of one in-flight request.
type call struct {
	op     string
	fields []zap.Field
	span   opentracing.Span
	start  time.Time
	logger *zap.Logger
}

func (server *Server) startCall(ctx context.Context, op, requestID, clientID string, fields ...zap.Field) *call {
	span, _ := opentracing.StartSpanFromContext(ctx, "kvstore."+op)
	span.SetTag("request-id", requestID)
	span.SetTag("client-id", clientID)

	c := &call{
		op:     op,
		span:   span,
		start:  time.Now(),
		logger: server.logger,
	}
	c.fields = make([]zap.Field, 0, len(fields)+3)
	c.fields = append(c.fields, zap.String("op", op))
	c.fields = append(c.fields, fields...)
	c.fields = append(c.fields, zap.String("request-id", requestID), zap.String("client-id", clientID))

	c.logger.Info("request received", c.fields...)
	return c
}

func (c *call) with(extra ...zap.Field) []zap.Field {
	fields := make([]zap.Field, 0, len(c.fields)+len(extra))
	fields = append(fields, c.fields...)
	return append(fields, extra...)
}

func (c *call) done(outcome ...zap.Field) {
	handleDuration.WithLabelValues(c.op).Observe(time.Since(c.start).Seconds())
	handleCounter.WithLabelValues(c.op, "ok").Inc()
	c.logger.Info("request finished", c.with(outcome...)...)
	c.span.Finish()
}

// fail logs err with the request context and converts it to the status returned to the caller.
func (c *call) fail(err error) error {
	handleDuration.WithLabelValues(c.op).Observe(time.Since(c.start).Seconds())
	handleCounter.WithLabelValues(c.op, "error").Inc()
	c.logger.Error("request failed", c.with(zap.Error(err))...)
	ext.Error.Set(c.span, true)
	c.span.SetTag("error.message", err.Error())
	c.span.Finish()
	return toStatusError(err)
}

func toStatusError(err error) error {
	return status.Error(codes.Internal, err.Error())
}
