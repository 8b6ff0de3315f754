package app

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/dietdesk/pkg/constants"
	"github.com/agentstation/dietdesk/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Data locations
	DataDir   string
	OutputDir string
	PageSize  int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables, e.g. DATA_DIR or DIETDESK_DATA_DIR
//  3. .env and .env.local files
//  4. Config file (configFile, or ~/.dietdesk.yaml, or ./.dietdesk.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range []string{"data_dir", "output_dir", "page_size", "format"} {
		if err := v.BindEnv(key, strings.ToUpper(key), "DIETDESK_"+strings.ToUpper(key)); err != nil {
			return nil, errors.NewConfigError("env", "binding "+key, err)
		}
	}

	v.SetDefault("data_dir", constants.DefaultDataDir)
	v.SetDefault("output_dir", constants.DefaultOutputDir)
	v.SetDefault("page_size", constants.DefaultPageSize)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicit or broken one is not.
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.NewConfigError("config file", err.Error(), err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		DataDir:   v.GetString("data_dir"),
		OutputDir: v.GetString("output_dir"),
		PageSize:  v.GetInt("page_size"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", valueOr(v.GetString("log_format"), "auto")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", valueOr(v.GetString("log_output"), "stderr")),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	if c.PageSize < 1 || c.PageSize > constants.MaxPageSize {
		return errors.NewValidationError("page_size", c.PageSize, "out of range")
	}
	if c.DataDir == "" {
		return errors.NewValidationError("data_dir", c.DataDir, "cannot be empty")
	}
	if c.OutputDir == "" {
		return errors.NewValidationError("output_dir", c.OutputDir, "cannot be empty")
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, dataDir, outputDir string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if outputDir != "" {
		c.OutputDir = outputDir
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first because godotenv never overrides a set variable.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func valueOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
