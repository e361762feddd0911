package depccg

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultStoreBaseURL is the remote artifact store endpoint. Artifacts
// are addressed by the opaque remote id of their catalog entry.
const DefaultStoreBaseURL = "https://drive.google.com/uc"

// envPrefix is the prefix for all configuration environment variables.
const envPrefix = "DEPCCG_"

// Config configures the models subsystem.
type Config struct {
	// ModelDir overrides the models directory. If empty, the platform
	// default is used. The DEPCCG_MODEL_DIR environment variable takes
	// precedence over both.
	ModelDir string `env:"MODEL_DIR" yaml:"model_dir"`

	// StoreBaseURL is the base URL of the remote artifact store.
	// Defaults to DefaultStoreBaseURL.
	StoreBaseURL string `env:"STORE_BASE_URL" yaml:"store_base_url"`
}

// ConfigFromEnv builds a Config from DEPCCG_-prefixed environment
// variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML configuration file and applies environment
// overrides on top, so DEPCCG_ variables win over file values.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
