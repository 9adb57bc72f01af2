package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Scrape      ScrapeConfig      `toml:"scrape"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify client-credentials settings.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenCache   string `toml:"token_cache"`
}

// Map converts the Spotify credentials to the map form consumed by the services package.
func (c SpotifyConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
		"token_cache":   c.TokenCache,
	}
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ScrapeConfig contains the scrape pipeline settings: query source,
// output workbook, search parameters, and the keyword heuristic.
type ScrapeConfig struct {
	QueriesPath string   `toml:"queries_path"`
	QueryColumn string   `toml:"query_column"`
	OutputDir   string   `toml:"output_dir"`
	OutputFile  string   `toml:"output_file"`
	Market      string   `toml:"market"`
	Limit       int      `toml:"limit"`
	Language    string   `toml:"language"`
	Keywords    []string `toml:"keywords"`
	RateLimit   float64  `toml:"rate_limit"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// SaveConfig writes the configuration to the specified path as TOML.
func SaveConfig(path string, config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays Spotify credentials from the environment onto the config.
//
// A .env file in the working directory is loaded first if present
// (missing files are not an error). SPOTIFY_ID and SPOTIFY_SECRET take
// precedence over values from the TOML file.
func ApplyEnv(config *Config) {
	_ = godotenv.Load()

	if id := os.Getenv("SPOTIFY_ID"); id != "" {
		config.Credentials.Spotify.ClientID = id
	}
	if secret := os.Getenv("SPOTIFY_SECRET"); secret != "" {
		config.Credentials.Spotify.ClientSecret = secret
	}
}
