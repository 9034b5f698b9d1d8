package registry

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pingcap-incubator/minikv/kv/config"
	"github.com/pingcap/errors"
	"go.etcd.io/etcd/embed"
	"go.uber.org/zap"
)

const embedStartTimeout = 30 * time.Second

// StartEmbedEtcd starts a single member etcd serving conf.Endpoints, so a server can bring up the
// registry its clients resolve it through.
func StartEmbedEtcd(conf *config.RegistryConfig, logger *zap.Logger) (*embed.Etcd, error) {
	cfg, err := genEmbedEtcdConfig(conf)
	if err != nil {
		return nil, err
	}

	etcd, err := embed.StartEtcd(cfg)
	if err != nil {
		return nil, errors.Annotate(err, "start embedded registry")
	}
	select {
	case <-etcd.Server.ReadyNotify():
	case <-time.After(embedStartTimeout):
		etcd.Server.Stop()
		etcd.Close()
		return nil, errors.Errorf("embedded registry not ready after %v", embedStartTimeout)
	}
	if logger != nil {
		logger.Info("embedded registry started",
			zap.Strings("client-urls", conf.Endpoints), zap.String("data-dir", conf.DataDir))
	}
	return etcd, nil
}

func genEmbedEtcdConfig(conf *config.RegistryConfig) (*embed.Config, error) {
	cfg := embed.NewConfig()
	cfg.Name = conf.Name
	cfg.Dir = conf.DataDir
	cfg.WalDir = ""
	cfg.Logger = "zap"
	cfg.LogOutputs = []string{"stderr"}

	var err error
	cfg.LCUrls, err = parseUrls(strings.Join(conf.Endpoints, ","))
	if err != nil {
		return nil, err
	}
	cfg.ACUrls = cfg.LCUrls
	cfg.LPUrls, err = parseUrls(conf.PeerURLs)
	if err != nil {
		return nil, err
	}
	cfg.APUrls = cfg.LPUrls

	cfg.StrictReconfigCheck = false
	cfg.InitialCluster = fmt.Sprintf("%s=%s", cfg.Name, &cfg.LPUrls[0])
	cfg.ClusterState = embed.ClusterStateFlagNew
	return cfg, nil
}

func parseUrls(s string) ([]url.URL, error) {
	items := strings.Split(s, ",")
	urls := make([]url.URL, 0, len(items))
	for _, item := range items {
		u, err := url.Parse(item)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		urls = append(urls, *u)
	}
	return urls, nil
}
