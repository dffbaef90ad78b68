package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/kizzycode/loreyawen"
	"github.com/kizzycode/loreyawen/store"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// sessionConfig holds the session material loreyawenctl needs to seal or
// open one frame; loaded from a YAML config file by viper (so keys never
// need to be typed as flags). No command-line flag sets these values.
type sessionConfig struct {
	NwkSKey string `mapstructure:"nwkskey"`
	AppSKey string `mapstructure:"appskey"`
	DevAddr string `mapstructure:"devaddr"`
}

func loadSessionConfig(cfgFile string) (*sessionConfig, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("loreyawenctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/loreyawenctl")
	}
	v.SetEnvPrefix("LOREYAWENCTL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "loreyawenctl: read config")
	}

	var cfg sessionConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "loreyawenctl: parse config")
	}
	return &cfg, nil
}

func (c *sessionConfig) keys() (nwkskey, appskey loreyawen.AES128Key, addr loreyawen.DevAddr, err error) {
	nwkskey, err = parseKey(c.NwkSKey)
	if err != nil {
		err = errors.Wrap(err, "nwkskey")
		return
	}
	appskey, err = parseKey(c.AppSKey)
	if err != nil {
		err = errors.Wrap(err, "appskey")
		return
	}
	addr, err = parseDevAddr(c.DevAddr)
	if err != nil {
		err = errors.Wrap(err, "devaddr")
		return
	}
	return
}

func (c *sessionConfig) memorySession() (*loreyawen.MemorySession, error) {
	nwkskey, appskey, addr, err := c.keys()
	if err != nil {
		return nil, err
	}
	return loreyawen.NewMemorySession(nwkskey, appskey, addr), nil
}

// storeConfig describes how to reach a persistent store.Backend for session
// state that should survive across loreyawenctl invocations. It is read
// directly with gopkg.in/yaml.v3 rather than through viper, the way
// xzhiot-lorawan_server's internal/config.Load reads its own config file
// with os.ReadFile + yaml.Unmarshal: this file carries infrastructure
// coordinates (Redis address, SQL DSN, KEK), not session secrets, so
// operators version and distribute it separately from the session config.
type storeConfig struct {
	Backend  string `yaml:"backend"` // "redis", "sqlite", or "postgres"
	Addr     string `yaml:"addr"`    // redis address, e.g. "localhost:6379"
	DSN      string `yaml:"dsn"`     // sqlite/postgres DSN
	KEKLabel string `yaml:"kek_label"`
	KEKHex   string `yaml:"kek"` // hex-encoded key-encryption key, may be empty
}

func loadStoreConfig(path string) (*storeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "loreyawenctl: read store config")
	}

	var cfg storeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "loreyawenctl: parse store config")
	}
	return &cfg, nil
}

func (c *storeConfig) backend() (store.Backend, error) {
	switch c.Backend {
	case "redis":
		return store.NewRedisStore(redis.NewClient(&redis.Options{Addr: c.Addr})), nil
	case "sqlite":
		return store.NewSQLiteStore(c.DSN)
	case "postgres":
		return store.NewPostgresStore(c.DSN)
	default:
		return nil, fmt.Errorf("loreyawenctl: unknown store backend %q", c.Backend)
	}
}

func (c *storeConfig) kek() ([]byte, error) {
	if c.KEKHex == "" {
		return nil, nil
	}
	return hex.DecodeString(c.KEKHex)
}

// loadSession resolves the SessionState a command should use: a persistent
// store.Session backed by storeConfigFile's Backend when given, provisioning
// a fresh record from sess's keys on first use, or an ephemeral
// loreyawen.MemorySession when no store config was given.
func loadSession(ctx context.Context, sess *sessionConfig, storeConfigFile string) (loreyawen.SessionState, error) {
	if storeConfigFile == "" {
		return sess.memorySession()
	}

	storeCfg, err := loadStoreConfig(storeConfigFile)
	if err != nil {
		return nil, err
	}
	backend, err := storeCfg.backend()
	if err != nil {
		return nil, err
	}
	kek, err := storeCfg.kek()
	if err != nil {
		return nil, errors.Wrap(err, "loreyawenctl: decode kek")
	}

	nwkskey, appskey, addr, err := sess.keys()
	if err != nil {
		return nil, err
	}

	session, err := store.Load(ctx, backend, addr, kek)
	if errors.Is(err, store.ErrNotFound) {
		session, err = store.Provision(ctx, backend, addr, nwkskey, appskey, storeCfg.KEKLabel, kek)
	}
	if err != nil {
		return nil, errors.Wrap(err, "loreyawenctl: load session")
	}
	return session, nil
}

func parseKey(s string) (loreyawen.AES128Key, error) {
	var key loreyawen.AES128Key
	b, err := hex.DecodeString(s)
	if err != nil {
		return key, err
	}
	if len(b) != len(key) {
		return key, fmt.Errorf("expected %d bytes, got %d", len(key), len(b))
	}
	copy(key[:], b)
	return key, nil
}

func parseDevAddr(s string) (loreyawen.DevAddr, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, err
	}
	if len(b) != 4 {
		return 0, fmt.Errorf("expected 4 bytes, got %d", len(b))
	}
	return loreyawen.DevAddr(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])), nil
}
