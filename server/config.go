package server

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/consensys/chroma/commitment"
)

const (
	defaultListenAddr      = "127.0.0.1:8909"
	defaultScheme          = "sha256"
	defaultSessionTTL      = 10 * time.Minute
	defaultSessionCapacity = 1024
	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 60 * time.Second
)

// Config carries the server settings.
type Config struct {
	ListenAddr string `yaml:"listenAddr"`
	// Commitment scheme name, see commitment.Implemented.
	Scheme string `yaml:"scheme"`
	// How long an idle session survives before it is dropped.
	SessionTTL time.Duration `yaml:"sessionTTL"`
	// Maximum number of concurrent sessions; the least recently used one
	// is displaced beyond this.
	SessionCapacity int `yaml:"sessionCapacity"`
	// Upper bound on rounds per commitment request. 0 keeps the prover
	// default of four times the edge count.
	MaxRounds    int           `yaml:"maxRounds"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// WithDefaults returns a copy of the Config with any missing fields set to
// their default values.
func (c Config) WithDefaults() Config {
	cpy := c
	if cpy.ListenAddr == "" {
		cpy.ListenAddr = defaultListenAddr
	}
	if cpy.Scheme == "" {
		cpy.Scheme = defaultScheme
	}
	if cpy.SessionTTL == 0 {
		cpy.SessionTTL = defaultSessionTTL
	}
	if cpy.SessionCapacity == 0 {
		cpy.SessionCapacity = defaultSessionCapacity
	}
	if cpy.ReadTimeout == 0 {
		cpy.ReadTimeout = defaultReadTimeout
	}
	if cpy.WriteTimeout == 0 {
		cpy.WriteTimeout = defaultWriteTimeout
	}
	return cpy
}

// SchemeID resolves the configured scheme name.
func (c Config) SchemeID() (commitment.SchemeID, error) {
	return commitment.IDFromString(c.Scheme)
}

// LoadConfig reads a yaml config file and applies defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("server: reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("server: parsing config: %w", err)
	}
	return cfg.WithDefaults(), nil
}
