package main

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"os"
	"pos/pkg/domain/model"
	"pos/pkg/infrastructure/storage"
	"time"
)

const appID = "pos"

type config struct {
	Storage           string        `envconfig:"storage" default:"file"`
	FilePath          string        `envconfig:"file_path" default:"pos-data.json"`
	RedisURL          string        `envconfig:"redis_url" default:"redis://localhost:6379/0"`
	RedisNamespace    string        `envconfig:"redis_namespace" default:"pos"`
	RedisTimeout      time.Duration `envconfig:"redis_timeout" default:"5s"`
	MySQLDSN          string        `envconfig:"mysql_dsn"`
	ServeAddress      string        `envconfig:"serve_address" default:":8080"`
	LogLevel          string        `envconfig:"log_level" default:"info"`
	LogFile           string        `envconfig:"log_file"`
	LowStockThreshold int           `envconfig:"low_stock_threshold" default:"5"`
}

func parseEnv() (*config, error) {
	c := new(config)
	if err := envconfig.Process(appID, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse env")
	}
	return c, nil
}

func initLogger(c *config) (func(), error) {
	log.SetFormatter(&log.JSONFormatter{})
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	log.SetLevel(level)

	if c.LogFile == "" {
		log.SetOutput(os.Stderr)
		return func() {}, nil
	}
	file, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open log file %s", c.LogFile)
	}
	log.SetOutput(file)
	return func() { _ = file.Close() }, nil
}

type closer interface {
	Close() error
}

func openStorage(c *config) (model.Storage, error) {
	switch c.Storage {
	case "memory":
		return storage.NewMemoryStorage(), nil
	case "file":
		return storage.NewFileStorage(c.FilePath)
	case "redis":
		return storage.NewRedisStorage(c.RedisURL, c.RedisNamespace, c.RedisTimeout)
	case "mysql":
		if c.MySQLDSN == "" {
			return nil, errors.New("POS_MYSQL_DSN is required for mysql storage")
		}
		return storage.NewMySQLStorage(c.MySQLDSN)
	default:
		return nil, errors.Errorf("unknown storage %q", c.Storage)
	}
}
