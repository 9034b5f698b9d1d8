package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pingcap-incubator/minikv/kv/config"
	"github.com/pingcap-incubator/minikv/kv/registry"
	"github.com/pingcap-incubator/minikv/kv/server"
	"github.com/pingcap-incubator/minikv/kv/storage"
	"github.com/pingcap-incubator/minikv/kv/storage/sharded_storage"
	"github.com/pingcap-incubator/minikv/kv/storage/standalone_storage"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

var (
	configPath    = flag.String("config", "", "config file path")
	addr          = flag.String("addr", "", "address the kv service listens on")
	serviceName   = flag.String("service", "", "name the kv service is bound under")
	statusAddr    = flag.String("status-addr", "", "address of the status and metrics endpoint")
	engine        = flag.String("engine", "", "storage engine, standalone or sharded")
	shardCount    = flag.Int("shards", 0, "number of shards of the sharded engine")
	endpoints     = flag.StringSlice("registry", nil, "registry endpoints")
	embedRegistry = flag.Bool("embed-registry", false, "start an embedded registry serving the registry endpoints")
	logLevel      = flag.StringP("log-level", "L", "", "log level: debug, info, warn, error, fatal")
)

func main() {
	flag.Parse()
	conf := loadConfig()

	if err := conf.SetupLogger(); err != nil {
		log.Fatal("initialize logger error", zap.Error(err))
	}
	log.ReplaceGlobals(conf.GetZapLogger(), conf.GetZapLogProperties())
	defer log.Sync()
	logger := conf.GetZapLogger()

	for _, msg := range conf.WarningMsgs {
		logger.Warn(msg)
	}
	logger.Info("config", zap.Reflect("conf", conf))

	if conf.Registry.Embed {
		etcd, err := registry.StartEmbedEtcd(&conf.Registry, logger)
		if err != nil {
			logger.Fatal("start embedded registry failed", zap.Error(err))
		}
		defer etcd.Close()
	}
	reg, err := registry.NewEtcdRegistry(conf.Registry.Endpoints, conf.Registry.DialTimeout.Duration,
		conf.Registry.LeaseTTL, logger)
	if err != nil {
		logger.Fatal("connect to registry failed", zap.Error(err))
	}
	defer reg.Close()

	store, err := newStorage(&conf.Storage)
	if err != nil {
		logger.Fatal("create storage failed", zap.Error(err))
	}
	if err := store.Start(); err != nil {
		logger.Fatal("start storage failed", zap.Error(err))
	}
	defer store.Stop()

	kvServer := server.NewServer(store, logger)
	grpcServer, err := server.NewGRPCServer(conf, kvServer)
	if err != nil {
		logger.Fatal("create grpc server failed", zap.Error(err))
	}

	l, err := net.Listen("tcp", conf.Server.Addr)
	if err != nil {
		logger.Fatal("listen failed", zap.String("addr", conf.Server.Addr), zap.Error(err))
	}
	boundAddr := l.Addr().String()

	ctx, cancel := context.WithTimeout(context.Background(), conf.Registry.DialTimeout.Duration)
	err = reg.Bind(ctx, conf.Server.ServiceName, boundAddr)
	cancel()
	if err != nil {
		logger.Fatal("bind service name failed", zap.String("name", conf.Server.ServiceName), zap.Error(err))
	}

	if conf.Server.StatusAddr != "" {
		go func() {
			logger.Info("status server listening", zap.String("addr", conf.Server.StatusAddr))
			handler := kvServer.StatusHandler(conf.Server.ServiceName, boundAddr)
			if err := http.ListenAndServe(conf.Server.StatusAddr, handler); err != nil {
				logger.Error("status server stopped", zap.Error(err))
			}
		}()
	}

	handleSignal(grpcServer, conf.Server.GracefulStopTimeout.Duration, logger)

	logger.Info("kv service ready", zap.String("name", conf.Server.ServiceName), zap.String("addr", boundAddr),
		zap.String("engine", conf.Storage.Engine))
	if err := grpcServer.Serve(l); err != nil {
		logger.Error("grpc server stopped", zap.Error(err))
	}

	ctx, cancel = context.WithTimeout(context.Background(), conf.Registry.DialTimeout.Duration)
	if err := reg.Unbind(ctx, conf.Server.ServiceName); err != nil {
		logger.Warn("unbind service name failed", zap.Error(err))
	}
	cancel()
	logger.Info("Server stopped.")
}

func loadConfig() *config.Config {
	conf := config.NewDefaultConfig()
	if *configPath != "" {
		var err error
		conf, err = config.LoadFile(*configPath)
		if err != nil {
			log.Fatal("load config failed", zap.String("path", *configPath), zap.Error(err))
		}
	}
	if *addr != "" {
		conf.Server.Addr = *addr
	}
	if *serviceName != "" {
		conf.Server.ServiceName = *serviceName
	}
	if flag.CommandLine.Changed("status-addr") {
		conf.Server.StatusAddr = *statusAddr
	}
	if *engine != "" {
		conf.Storage.Engine = *engine
	}
	if *shardCount != 0 {
		conf.Storage.ShardCount = *shardCount
	}
	if len(*endpoints) != 0 {
		conf.Registry.Endpoints = *endpoints
	}
	if flag.CommandLine.Changed("embed-registry") {
		conf.Registry.Embed = *embedRegistry
	}
	if *logLevel != "" {
		conf.Log.Level = *logLevel
	}
	conf.Adjust()
	if err := conf.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}
	return conf
}

func newStorage(conf *config.StorageConfig) (storage.Storage, error) {
	switch conf.Engine {
	case config.EngineStandalone:
		return standalone_storage.NewStandAloneStorage(), nil
	case config.EngineSharded:
		return sharded_storage.NewShardedStorage(conf.ShardCount)
	}
	return nil, errors.Errorf("unknown storage engine %q", conf.Engine)
}

func handleSignal(grpcServer *grpc.Server, timeout time.Duration, logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		sig := <-sigCh
		logger.Info("Got signal to exit", zap.String("signal", sig.String()))
		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(timeout):
			logger.Warn("graceful stop timed out", zap.Duration("timeout", timeout))
			grpcServer.Stop()
		}
	}()
}
