package client

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderConfig holds optional file overrides for LoadConfig.
type LoaderConfig struct {
	// ConfigFile is an explicit YAML config file path.
	ConfigFile string
	// EnvFile is an explicit .env file path.
	EnvFile string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig loads a client Config from YAML and environment variables.
// Explicit file paths win; otherwise fetchkit.yml and .env are searched in
// the working directory. Environment variables use the FETCHKIT_ prefix
// with underscores for nesting (FETCHKIT_PREFIX, FETCHKIT_RESPONSE_TYPE).
// Hooks, suppliers, and the Fetcher are code-level settings and cannot be
// loaded from files.
func LoadConfig(opts ...LoaderOption) (Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.ConfigFile == "" {
		lc.ConfigFile = findFile("fetchkit.yml", "fetchkit.yaml", "config/fetchkit.yml")
	}
	if lc.EnvFile == "" {
		lc.EnvFile = findFile(".env")
	}

	v := viper.New()

	if lc.ConfigFile != "" && exists(lc.ConfigFile) {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("client: read config file %s: %w", lc.ConfigFile, err)
		}
	}

	v.SetEnvPrefix("FETCHKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if lc.EnvFile != "" && exists(lc.EnvFile) {
		if err := godotenv.Load(lc.EnvFile); err != nil {
			return Config{}, fmt.Errorf("client: load env file %s: %w", lc.EnvFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("client: unmarshal config: %w", err)
	}
	return cfg, nil
}

// bindEnvKeys registers the loadable keys so AutomaticEnv resolves them even
// when the config file omits them.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"method", "mode", "cache", "credentials", "response_type", "prefix",
	} {
		_ = v.BindEnv(key)
	}
}

// findFile returns the first existing candidate path, or "".
func findFile(candidates ...string) string {
	for _, path := range candidates {
		if exists(path) {
			return path
		}
	}
	return ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
