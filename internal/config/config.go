// Package config holds the runtime configuration for the extraction CLI,
// layered from defaults, NCRB_* environment variables, and command line
// flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultStateFile   = "state_data.csv"
	DefaultCityFile    = "city_data.csv"
	DefaultCleanedDir  = "cleaned_data"
	DefaultMaxPages    = 2
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for the extraction pipeline.
type Config struct {
	// Output configuration
	StateFile  string // intermediate state-level CSV
	CityFile   string // intermediate city-level CSV
	CleanedDir string // directory for the final cleaned artifacts

	// Extraction configuration
	MaxPages    int   // pages inspected per document
	MaxFileSize int64 // maximum PDF file size in bytes

	// Application configuration
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		StateFile:   DefaultStateFile,
		CityFile:    DefaultCityFile,
		CleanedDir:  DefaultCleanedDir,
		MaxPages:    DefaultMaxPages,
		MaxFileSize: DefaultMaxFileSize,
		LogLevel:    DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration. The
// positional arguments (the folder to scan) remain available via pflag.Args
// after this returns.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("NCRB")
	viper.AutomaticEnv()

	viper.SetDefault("statefile", cfg.StateFile)
	viper.SetDefault("cityfile", cfg.CityFile)
	viper.SetDefault("cleaneddir", cfg.CleanedDir)
	viper.SetDefault("maxpages", cfg.MaxPages)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("statefile", cfg.StateFile, "Intermediate CSV file for state-level records")
	pflag.String("cityfile", cfg.CityFile, "Intermediate CSV file for city-level records")
	pflag.String("cleaneddir", cfg.CleanedDir, "Directory for final cleaned CSV files")
	pflag.Int("maxpages", cfg.MaxPages, "Number of leading pages to inspect per document")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("statefile", pflag.Lookup("statefile"))
	_ = viper.BindPFlag("cityfile", pflag.Lookup("cityfile"))
	_ = viper.BindPFlag("cleaneddir", pflag.Lookup("cleaneddir"))
	_ = viper.BindPFlag("maxpages", pflag.Lookup("maxpages"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nncrb-extract - extract state/city suicide statistics tables from NCRB report PDFs\n\n")
		fmt.Fprintf(os.Stderr, "  %s [options] <folder>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  folder    Root directory containing the downloaded report PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  NCRB_STATEFILE    Intermediate state-level CSV\n")
		fmt.Fprintf(os.Stderr, "  NCRB_CITYFILE     Intermediate city-level CSV\n")
		fmt.Fprintf(os.Stderr, "  NCRB_CLEANEDDIR   Cleaned output directory\n")
		fmt.Fprintf(os.Stderr, "  NCRB_MAXPAGES     Pages inspected per document\n")
		fmt.Fprintf(os.Stderr, "  NCRB_MAXFILESIZE  Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  NCRB_LOGLEVEL     Log level\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.StateFile = viper.GetString("statefile")
	cfg.CityFile = viper.GetString("cityfile")
	cfg.CleanedDir = viper.GetString("cleaneddir")
	cfg.MaxPages = viper.GetInt("maxpages")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.StateFile == "" {
		return errors.New("state file cannot be empty")
	}
	if c.CityFile == "" {
		return errors.New("city file cannot be empty")
	}
	if c.StateFile == c.CityFile {
		return errors.New("state and city files must differ")
	}
	if c.CleanedDir == "" {
		return errors.New("cleaned output directory cannot be empty")
	}
	if c.MaxPages < 1 {
		return errors.New("maxpages must be at least 1")
	}
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{StateFile: %s, CityFile: %s, CleanedDir: %s, MaxPages: %d, MaxFileSize: %d, LogLevel: %s}",
		c.StateFile, c.CityFile, c.CleanedDir, c.MaxPages, c.MaxFileSize, c.LogLevel)
}
