package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// LoadConfigWithName loads configuration using the specified name, auto-detecting the file type
// This is useful when the configuration file extension is unknown or variable
func LoadConfigWithName(configName string) (*Config, error) {
	return loadConfig(configName, "")
}

// LoadConfigWithNameAndType loads configuration with explicit name and type specification
// Use this when you need to force a specific configuration format (e.g., "yaml", "json")
func LoadConfigWithNameAndType(configName, configType string) (*Config, error) {
	return loadConfig(configName, configType)
}

// LoadConfig loads configuration from a .env file using the provided base name
// This is the preferred method for loading environment-specific configurations
func LoadConfig(configName string) (*Config, error) {
	configFileName := fmt.Sprintf("%s.env", configName)
	return loadConfig(configFileName, "env")
}

// loadConfig handles configuration loading from files and environment variables.
// It implements a layered approach to configuration:
// 1. Load defaults
// 2. Override with config file values (if found)
// 3. Override with environment variables
// 4. Validate the final configuration
func loadConfig(configName, configType string) (*Config, error) {
	// Initialize viper with default values
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	if configType != "" {
		v.SetConfigType(configType)
	}

	// Add config paths in order of priority
	v.AddConfigPath("./configs") // First check in configs directory
	v.AddConfigPath(".")         // Then check in root directory

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Printf("INFO: No config file '%s' found, relying on environment variables and defaults.\n", configName)
		} else {
			fmt.Printf("WARNING: Error reading config file (%s): %v\n", v.ConfigFileUsed(), err)
		}
	} else {
		fmt.Printf("INFO: Config loaded from file: %s\n", v.ConfigFileUsed())
	}

	v.AutomaticEnv() // Automatically read matching environment variables

	// Build the config struct
	config := &Config{
		Application: ApplicationConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		LedgerAPI: LedgerAPIConfig{
			BaseURL: v.GetString("LEDGER_API_BASE_URL"),
			Token:   v.GetString("LEDGER_API_TOKEN"),
			Timeout: v.GetDuration("LEDGER_API_TIMEOUT"),
		},
		WorkerPool: WorkerPoolConfig{
			Size: v.GetInt("WORKER_POOL_SIZE"),
		},
		Rankings: RankingsConfig{
			DefaultLimit:     v.GetInt("RANKINGS_DEFAULT_LIMIT"),
			MaxItems:         v.GetInt("RANKINGS_MAX_ITEMS"),
			PodiumBreakpoint: v.GetInt("RANKINGS_PODIUM_BREAKPOINT"),
		},
		Checkout: CheckoutConfig{
			RedirectDelay:      v.GetDuration("CHECKOUT_REDIRECT_DELAY"),
			DefaultRedirectURL: v.GetString("CHECKOUT_DEFAULT_REDIRECT_URL"),
		},
	}

	// Validate the configuration
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults initializes configuration with sensible default values.
// These values are used when no configuration file or environment variables are present.
func setDefaults(v *viper.Viper) {
	// HTTP Server defaults - tuned for typical web application workloads
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)

	// Ledger API defaults - development endpoint; production must override
	v.SetDefault("LEDGER_API_BASE_URL", "http://localhost:9000")
	v.SetDefault("LEDGER_API_TOKEN", "")
	v.SetDefault("LEDGER_API_TIMEOUT", 30*time.Second)

	// Worker pool default - bounds concurrent upstream fetches
	v.SetDefault("WORKER_POOL_SIZE", 10)

	// Ranking presentation defaults
	v.SetDefault("RANKINGS_DEFAULT_LIMIT", 100)
	v.SetDefault("RANKINGS_MAX_ITEMS", 100)
	v.SetDefault("RANKINGS_PODIUM_BREAKPOINT", 768) // Single fixed breakpoint for the wide podium

	// Checkout defaults - the result message stays visible briefly before redirecting
	v.SetDefault("CHECKOUT_REDIRECT_DELAY", 5*time.Second)
	v.SetDefault("CHECKOUT_DEFAULT_REDIRECT_URL", "/")

	// Logging defaults - 'info' provides good balance of information vs noise
	v.SetDefault("LOG_LEVEL", "info")

	// Application defaults - development-friendly baseline configuration
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "copia-dashboard")
}
