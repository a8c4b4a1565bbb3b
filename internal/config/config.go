// Package config loads tracklab configuration from an optional config.yaml
// plus environment variables. Environment always overrides the file; the
// catalog credentials come only from the environment (or a .env file loaded
// before parsing).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds everything the CLI subcommands need.
type Config struct {
	Spotify  SpotifyConfig  `yaml:"spotify"`
	Retry    RetryConfig    `yaml:"retry"`
	Datasets DatasetsConfig `yaml:"datasets"`
}

// SpotifyConfig configures the catalog adapter. Credentials are secrets and
// are never read from YAML.
type SpotifyConfig struct {
	ClientID       string        `yaml:"-" env:"SPOTIFY_CLIENT_ID"`
	ClientSecret   string        `yaml:"-" env:"SPOTIFY_CLIENT_SECRET"`
	TokenURL       string        `yaml:"token_url" env:"SPOTIFY_TOKEN_URL" env-default:"https://accounts.spotify.com/api/token"`
	APIBaseURL     string        `yaml:"api_base_url" env:"SPOTIFY_API_URL" env-default:"https://api.spotify.com/v1"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SPOTIFY_REQUEST_TIMEOUT" env-default:"10s"`
}

// RetryConfig configures the retry controller around each lookup.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts" env:"LOOKUP_MAX_ATTEMPTS" env-default:"3"`
	InitialDelay time.Duration `yaml:"initial_delay" env:"LOOKUP_INITIAL_DELAY" env-default:"1s"`
	// CallDelay paces requests under the catalog's ~10 req/s limit.
	CallDelay time.Duration `yaml:"call_delay" env:"LOOKUP_CALL_DELAY" env-default:"200ms"`
}

// DatasetsConfig names the input and output files.
type DatasetsConfig struct {
	ArtistsPath    string `yaml:"artists" env:"DATASET_ARTISTS" env-default:"datasets/artists.csv"`
	TracksPath     string `yaml:"tracks" env:"DATASET_TRACKS" env-default:"datasets/tracks.csv"`
	SupplementPath string `yaml:"supplement" env:"DATASET_SUPPLEMENT" env-default:""`
	OutputDir      string `yaml:"output_dir" env:"DATASET_OUTPUT_DIR" env-default:"enriched_datasets"`
}

// Load reads configuration. A .env file is loaded first when present, then
// the first existing YAML path is merged, then environment overrides.
func Load(yamlPaths ...string) (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	var cfg Config
	for _, path := range yamlPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}
	return &cfg, nil
}

// ValidateSpotify fails fast, before any network activity, when the catalog
// credentials are absent.
func (c *Config) ValidateSpotify() error {
	var missing []string
	if c.Spotify.ClientID == "" {
		missing = append(missing, "SPOTIFY_CLIENT_ID")
	}
	if c.Spotify.ClientSecret == "" {
		missing = append(missing, "SPOTIFY_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required environment variables: %v", missing)
	}
	return nil
}
