package server

import (
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/pingcap-incubator/minikv/kv/config"
	"github.com/pingcap-incubator/minikv/proto/pkg/kvstorepb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
)

// NewGRPCServer creates a gRPC server with the KeyValue service of server registered on it.
func NewGRPCServer(conf *config.Config, server *Server) (*grpc.Server, error) {
	maxRecvMsgSize, err := conf.MaxRecvMsgBytes()
	if err != nil {
		return nil, err
	}

	var alivePolicy = keepalive.EnforcementPolicy{
		MinTime:             conf.Server.KeepaliveMinTime.Duration, // If a client pings more often than this, terminate the connection
		PermitWithoutStream: true,                                  // Allow pings even when there are no active streams
	}

	grpcServer := grpc.NewServer(
		grpc.KeepaliveEnforcementPolicy(alivePolicy),
		grpc.MaxRecvMsgSize(maxRecvMsgSize),
		grpc.UnaryInterceptor(grpc_prometheus.UnaryServerInterceptor),
		grpc.StreamInterceptor(grpc_prometheus.StreamServerInterceptor),
	)
	kvstorepb.RegisterKeyValueServer(grpcServer, server)
	grpc_prometheus.Register(grpcServer)
	return grpcServer, nil
}
