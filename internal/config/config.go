// Package config loads runtime settings from defaults, an optional YAML
// file and DASHD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "DASHD"

type Config struct {
	APIURL         string
	UserID         string
	UserName       string
	Store          string
	StorePath      string
	RedisURL       string
	Theme          string
	ExportDir      string
	LogFile        string
	RefreshMinutes int
	HTTPTimeout    time.Duration
	Debug          bool
}

// RefreshInterval is zero when automatic refresh is disabled.
func (c Config) RefreshInterval() time.Duration {
	if c.RefreshMinutes <= 0 {
		return 0
	}
	return time.Duration(c.RefreshMinutes) * time.Minute
}

func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "dashd")
	}
	return ".dashd"
}

// New returns a viper instance with every key defaulted and bound to the
// environment.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	dataDir := DefaultDataDir()
	v.SetDefault("api_url", "http://localhost:5000")
	v.SetDefault("user_id", "")
	v.SetDefault("user_name", "")
	v.SetDefault("store", "sqlite")
	v.SetDefault("store_path", filepath.Join(dataDir, "dashd.db"))
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("theme", "")
	v.SetDefault("export_dir", ".")
	v.SetDefault("log_file", "")
	v.SetDefault("refresh_minutes", 0)
	v.SetDefault("http_timeout_seconds", 30)
	v.SetDefault("debug", false)
	return v
}

// ReadFile merges a YAML config file. An empty path looks for
// config.yaml in the default data dir and tolerates its absence.
func ReadFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(DefaultDataDir())
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func Load(v *viper.Viper) Config {
	timeout := v.GetInt("http_timeout_seconds")
	if timeout <= 0 {
		timeout = 30
	}
	return Config{
		APIURL:         strings.TrimSpace(v.GetString("api_url")),
		UserID:         strings.TrimSpace(v.GetString("user_id")),
		UserName:       strings.TrimSpace(v.GetString("user_name")),
		Store:          strings.ToLower(strings.TrimSpace(v.GetString("store"))),
		StorePath:      strings.TrimSpace(v.GetString("store_path")),
		RedisURL:       strings.TrimSpace(v.GetString("redis_url")),
		Theme:          strings.TrimSpace(v.GetString("theme")),
		ExportDir:      strings.TrimSpace(v.GetString("export_dir")),
		LogFile:        strings.TrimSpace(v.GetString("log_file")),
		RefreshMinutes: v.GetInt("refresh_minutes"),
		HTTPTimeout:    time.Duration(timeout) * time.Second,
		Debug:          v.GetBool("debug"),
	}
}
