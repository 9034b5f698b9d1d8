// Package servertest runs a minikv gRPC server over an in-memory listener for tests.
package servertest

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/pingcap-incubator/minikv/kv/config"
	"github.com/pingcap-incubator/minikv/kv/registry"
	"github.com/pingcap-incubator/minikv/kv/server"
	"github.com/pingcap-incubator/minikv/kv/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

const (
	ServiceName = "kvstore"
	bufferSize  = 1 << 20
	bufAddr     = "bufnet"
)

type TestServer struct {
	Storage  storage.Storage
	Server   *server.Server
	Registry *registry.StaticRegistry
	// Logs holds the trace records of the server.
	Logs *observer.ObservedLogs

	grpcServer *grpc.Server
	listener   *bufconn.Listener
}

// Start serves s over an in-memory listener and binds it as ServiceName in a fresh StaticRegistry.
func Start(t *testing.T, s storage.Storage) *TestServer {
	require.Nil(t, s.Start())
	core, logs := observer.New(zapcore.DebugLevel)
	srv := server.NewServer(s, zap.New(core))
	grpcServer, err := server.NewGRPCServer(config.NewTestConfig(), srv)
	require.Nil(t, err)

	lis := bufconn.Listen(bufferSize)
	go grpcServer.Serve(lis)

	reg := registry.NewStaticRegistry()
	require.Nil(t, reg.Bind(context.Background(), ServiceName, bufAddr))

	return &TestServer{
		Storage:    s,
		Server:     srv,
		Registry:   reg,
		Logs:       logs,
		grpcServer: grpcServer,
		listener:   lis,
	}
}

// DialOption routes a client connection to the in-memory listener.
func (ts *TestServer) DialOption() grpc.DialOption {
	return grpc.WithDialer(func(string, time.Duration) (net.Conn, error) {
		return ts.listener.Dial()
	})
}

func (ts *TestServer) Stop() {
	ts.grpcServer.Stop()
	ts.Storage.Stop()
}
