package config

import (
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/docker/go-units"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Storage engine names accepted by StorageConfig.Engine.
const (
	EngineStandalone = "standalone"
	EngineSharded    = "sharded"
)

type Config struct {
	Server   ServerConfig   `toml:"server" json:"server"`
	Storage  StorageConfig  `toml:"storage" json:"storage"`
	Registry RegistryConfig `toml:"registry" json:"registry"`

	// Log related config.
	Log log.Config `toml:"log" json:"log"`

	// For all warnings during parsing.
	WarningMsgs []string `toml:"-" json:"-"`

	logger   *zap.Logger
	logProps *log.ZapProperties
}

type ServerConfig struct {
	// Addr is the gRPC listen address, it is also the address bound in the registry.
	Addr        string `toml:"addr" json:"addr"`
	ServiceName string `toml:"service-name" json:"service-name"`
	// StatusAddr serves /metrics and /status over HTTP. Empty disables it.
	StatusAddr string `toml:"status-addr" json:"status-addr"`

	MaxRecvMsgSize   string   `toml:"max-recv-msg-size" json:"max-recv-msg-size"`
	KeepaliveMinTime Duration `toml:"keepalive-min-time" json:"keepalive-min-time"`
	// Time to wait for in-flight calls on shutdown before forcing the listener closed.
	GracefulStopTimeout Duration `toml:"graceful-stop-timeout" json:"graceful-stop-timeout"`
}

type StorageConfig struct {
	Engine string `toml:"engine" json:"engine"`
	// Only used by the sharded engine, must be a power of two.
	ShardCount int `toml:"shard-count" json:"shard-count"`
}

type RegistryConfig struct {
	Endpoints []string `toml:"endpoints" json:"endpoints"`
	// Embed starts an etcd member inside the server process, listening on Endpoints[0].
	Embed    bool   `toml:"embed" json:"embed"`
	Name     string `toml:"name" json:"name"`
	DataDir  string `toml:"data-dir" json:"data-dir"`
	PeerURLs string `toml:"peer-urls" json:"peer-urls"`

	DialTimeout Duration `toml:"dial-timeout" json:"dial-timeout"`
	// LeaseTTL is the lifetime of a binding in seconds, kept alive while the server runs.
	LeaseTTL int64 `toml:"lease-ttl" json:"lease-ttl"`
}

const (
	defaultAddr             = "127.0.0.1:20160"
	defaultServiceName      = "kvstore"
	defaultMaxRecvMsgSize   = "10MiB"
	defaultKeepaliveMinTime = 2 * time.Second
	defaultGracefulStop     = 5 * time.Second

	defaultShardCount = 16

	defaultRegistryEndpoint = "http://127.0.0.1:2379"
	defaultRegistryPeerURLs = "http://127.0.0.1:2380"
	defaultRegistryName     = "minikv-registry"
	defaultRegistryDataDir  = "/tmp/minikv-registry"
	defaultDialTimeout      = 3 * time.Second
	defaultLeaseTTL         = int64(10)
)

func getLogLevel() (logLevel string) {
	logLevel = "info"
	if l := os.Getenv("LOG_LEVEL"); len(l) != 0 {
		logLevel = l
	}
	return
}

func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                defaultAddr,
			ServiceName:         defaultServiceName,
			StatusAddr:          "127.0.0.1:20180",
			MaxRecvMsgSize:      defaultMaxRecvMsgSize,
			KeepaliveMinTime:    NewDuration(defaultKeepaliveMinTime),
			GracefulStopTimeout: NewDuration(defaultGracefulStop),
		},
		Storage: StorageConfig{
			Engine:     EngineStandalone,
			ShardCount: defaultShardCount,
		},
		Registry: RegistryConfig{
			Endpoints:   []string{defaultRegistryEndpoint},
			Embed:       true,
			Name:        defaultRegistryName,
			DataDir:     defaultRegistryDataDir,
			PeerURLs:    defaultRegistryPeerURLs,
			DialTimeout: NewDuration(defaultDialTimeout),
			LeaseTTL:    defaultLeaseTTL,
		},
		Log: log.Config{
			Level:  getLogLevel(),
			Format: "text",
		},
	}
}

func NewTestConfig() *Config {
	c := NewDefaultConfig()
	c.Server.Addr = "127.0.0.1:0"
	c.Server.StatusAddr = ""
	c.Server.GracefulStopTimeout = NewDuration(time.Second)
	c.Registry.Embed = false
	c.Registry.DialTimeout = NewDuration(time.Second)
	return c
}

// LoadFile overlays the toml file at path on top of the default config.
func LoadFile(path string) (*Config, error) {
	c := NewDefaultConfig()
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, errors.Annotatef(err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		c.WarningMsgs = append(c.WarningMsgs, "Config contains undefined item: "+strings.Join(keys, ", "))
	}
	c.Adjust()
	return c, nil
}

func adjustString(v *string, defValue string) {
	if len(*v) == 0 {
		*v = defValue
	}
}

func adjustInt64(v *int64, defValue int64) {
	if *v == 0 {
		*v = defValue
	}
}

func adjustDuration(v *Duration, defValue time.Duration) {
	if v.Duration == 0 {
		v.Duration = defValue
	}
}

// Adjust fills in defaults for fields left empty.
func (c *Config) Adjust() {
	adjustString(&c.Server.Addr, defaultAddr)
	adjustString(&c.Server.ServiceName, defaultServiceName)
	adjustString(&c.Server.MaxRecvMsgSize, defaultMaxRecvMsgSize)
	adjustDuration(&c.Server.KeepaliveMinTime, defaultKeepaliveMinTime)
	adjustDuration(&c.Server.GracefulStopTimeout, defaultGracefulStop)

	adjustString(&c.Storage.Engine, EngineStandalone)
	if c.Storage.ShardCount == 0 {
		c.Storage.ShardCount = defaultShardCount
	}

	if len(c.Registry.Endpoints) == 0 {
		c.Registry.Endpoints = []string{defaultRegistryEndpoint}
	}
	adjustString(&c.Registry.Name, defaultRegistryName)
	adjustString(&c.Registry.DataDir, defaultRegistryDataDir)
	adjustString(&c.Registry.PeerURLs, defaultRegistryPeerURLs)
	adjustDuration(&c.Registry.DialTimeout, defaultDialTimeout)
	adjustInt64(&c.Registry.LeaseTTL, defaultLeaseTTL)

	adjustString(&c.Log.Level, getLogLevel())
	adjustString(&c.Log.Format, "text")
}

func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return errors.Annotatef(err, "invalid server addr %q", c.Server.Addr)
	}
	if c.Server.ServiceName == "" {
		return errors.New("service name must not be empty")
	}
	if _, err := c.MaxRecvMsgBytes(); err != nil {
		return err
	}

	switch c.Storage.Engine {
	case EngineStandalone:
	case EngineSharded:
		n := c.Storage.ShardCount
		if n <= 0 || n&(n-1) != 0 {
			return errors.Errorf("shard count must be a positive power of two, got %d", n)
		}
	default:
		return errors.Errorf("unknown storage engine %q", c.Storage.Engine)
	}

	if len(c.Registry.Endpoints) == 0 {
		return errors.New("registry endpoints must not be empty")
	}
	if c.Registry.LeaseTTL <= 0 {
		return errors.Errorf("registry lease ttl must be greater than 0, got %d", c.Registry.LeaseTTL)
	}
	return nil
}

// MaxRecvMsgBytes parses Server.MaxRecvMsgSize, e.g. "10MiB".
func (c *Config) MaxRecvMsgBytes() (int, error) {
	n, err := units.RAMInBytes(c.Server.MaxRecvMsgSize)
	if err != nil {
		return 0, errors.Annotatef(err, "invalid max-recv-msg-size %q", c.Server.MaxRecvMsgSize)
	}
	if n <= 0 {
		return 0, errors.Errorf("max-recv-msg-size must be greater than 0, got %q", c.Server.MaxRecvMsgSize)
	}
	return int(n), nil
}

// SetupLogger setup the logger.
func (c *Config) SetupLogger() error {
	lg, p, err := log.InitLogger(&c.Log, zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		return errors.Trace(err)
	}
	c.logger = lg
	c.logProps = p
	return nil
}

// GetZapLogger gets the created zap logger.
func (c *Config) GetZapLogger() *zap.Logger {
	return c.logger
}

// GetZapLogProperties gets properties of the zap logger.
func (c *Config) GetZapLogProperties() *log.ZapProperties {
	return c.logProps
}
