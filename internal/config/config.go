package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Search  SearchConfig  `mapstructure:"search"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds data locations
type CatalogConfig struct {
	DataDir    string `mapstructure:"data_dir"`    // Bolt database directory
	MoviesFile string `mapstructure:"movies_file"` // Bundled movies dataset (JSON)
	ShowsFile  string `mapstructure:"shows_file"`  // Bundled shows dataset (JSON)
}

// SearchConfig holds fuzzy search tuning
type SearchConfig struct {
	Threshold float64 `mapstructure:"threshold"` // 0-1, 0 = perfect match
}

// UIConfig holds interaction timing
type UIConfig struct {
	DebounceMs  int `mapstructure:"debounce_ms"`   // Keystroke collapse window
	BlurAfterMs int `mapstructure:"blur_after_ms"` // Inactivity before the search field blurs
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			DataDir:    defaultDataPath(),
			MoviesFile: "movies.json",
			ShowsFile:  "shows.json",
		},
		Search: SearchConfig{
			Threshold: 0.3,
		},
		UI: UIConfig{
			DebounceMs:  100,
			BlurAfterMs: 3000,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "movie-picker")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "movie-picker")
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "movie-picker", "movie-picker.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "movie-picker", "movie-picker.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "movie-picker")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "movie-picker")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("MOVIEPICKER")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}
