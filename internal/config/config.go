// Package config provides configuration structures and validation for the
// dashboard gateway. Everything is environment-driven: HTTP server settings,
// the upstream ledger API endpoint, the suspension-cache worker pool, and
// presentation constants for rankings and checkout.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the complete application configuration. Each field covers one
// subsystem and is validated during startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	LedgerAPI   LedgerAPIConfig
	WorkerPool  WorkerPoolConfig
	Rankings    RankingsConfig
	Checkout    CheckoutConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// LedgerAPIConfig contains the upstream ledger API connection settings
type LedgerAPIConfig struct {
	BaseURL string        // Ledger API root, e.g. https://ledger.example.com
	Token   string        // Bearer token for the dashboard's service account
	Timeout time.Duration // Per-request timeout
}

// WorkerPoolConfig sizes the suspension cache's producer pool, bounding
// concurrent upstream fetches
type WorkerPoolConfig struct {
	Size int
}

// RankingsConfig contains ranking presentation settings
type RankingsConfig struct {
	DefaultLimit     int // Items requested from the ledger per ranking
	MaxItems         int // Items shown after truncation
	PodiumBreakpoint int // Viewport width in px at which the podium goes wide
}

// CheckoutConfig contains checkout flow settings
type CheckoutConfig struct {
	RedirectDelay      time.Duration // How long the result message stays visible
	DefaultRedirectURL string        // Where to send the user when the project names no URL
}

// validate checks all configuration values against their minimum
// requirements, collecting every violation rather than stopping at the first
func (c *Config) validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	if c.LedgerAPI.BaseURL == "" {
		validationErrors = append(validationErrors, "LEDGER_API_BASE_URL is required")
	}
	if c.LedgerAPI.Timeout <= 0 {
		validationErrors = append(validationErrors, "LEDGER_API_TIMEOUT must be greater than 0")
	}

	if c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}

	if c.Rankings.DefaultLimit <= 0 {
		validationErrors = append(validationErrors, "RANKINGS_DEFAULT_LIMIT must be greater than 0")
	}
	if c.Rankings.MaxItems <= 0 {
		validationErrors = append(validationErrors, "RANKINGS_MAX_ITEMS must be greater than 0")
	}
	if c.Rankings.PodiumBreakpoint <= 0 {
		validationErrors = append(validationErrors, "RANKINGS_PODIUM_BREAKPOINT must be greater than 0")
	}

	if c.Checkout.RedirectDelay <= 0 {
		validationErrors = append(validationErrors, "CHECKOUT_REDIRECT_DELAY must be greater than 0")
	}
	if c.Checkout.DefaultRedirectURL == "" {
		validationErrors = append(validationErrors, "CHECKOUT_DEFAULT_REDIRECT_URL is required")
	}

	if len(validationErrors) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(validationErrors, "; "))
	}

	return nil
}
