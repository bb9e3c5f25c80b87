package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"

	"invoicesync/internal/logger"
)

// Template ids of the company's Rompslomp invoice layouts, selected by
// shipping destination. Overridable via env for other administrations.
const (
	defaultTemplateNL    = 217484825
	defaultTemplateEU    = 816357573
	defaultTemplateOther = 911144380
)

type Config struct {
	// Dokan Marketplace API
	DokanBaseURL  string
	DokanUsername string
	DokanPassword string

	// Rompslomp Accounting API
	RompslompBaseURL   string
	RompslompCompanyID string
	RompslompAPIKey    string
	ContactsEndpoint   string
	ProductsEndpoint   string
	InvoicesEndpoint   string

	// Mapping tables (CSV files)
	VATMappingFile      string
	ShippingMappingFile string

	// Invoice templates per destination group
	TemplateIDNL    int64
	TemplateIDEU    int64
	TemplateIDOther int64

	// HTTP behaviour
	HTTPTimeout time.Duration
	CacheTTL    time.Duration

	// Front-end server
	ServeAddr string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// TableFiles returns the mapping file locations. Split out from Load so
// offline table checks work without the secret-bearing configuration.
func TableFiles() (vatFile, shippingFile string) {
	return getEnv("VAT_MAPPING_FILE", "vat_mapping.csv"),
		getEnv("SHIPPING_MAPPING_FILE", "shipping_mapping.csv")
}

func Load() (*Config, error) {
	vatFile, shippingFile := TableFiles()

	config := &Config{
		DokanBaseURL:  getEnv("DOKAN_BASE_URL", ""),
		DokanUsername: getEnv("DOKAN_USERNAME", ""),
		DokanPassword: getEnv("DOKAN_PASSWORD", ""),

		RompslompBaseURL:   getEnv("ROMPSLOMP_BASE_URL", "https://api.rompslomp.nl/api/v1/companies"),
		RompslompCompanyID: getEnv("ROMPSLOMP_COMPANY_ID", ""),
		RompslompAPIKey:    getEnv("ROMPSLOMP_API_KEY", ""),
		ContactsEndpoint:   getEnv("ROMPSLOMP_CONTACTS_ENDPOINT", "/contacts"),
		ProductsEndpoint:   getEnv("ROMPSLOMP_PRODUCTS_ENDPOINT", "/products"),
		InvoicesEndpoint:   getEnv("ROMPSLOMP_INVOICES_ENDPOINT", "/sales_invoices"),

		VATMappingFile:      vatFile,
		ShippingMappingFile: shippingFile,

		TemplateIDNL:    getEnvInt64("TEMPLATE_ID_NL", defaultTemplateNL),
		TemplateIDEU:    getEnvInt64("TEMPLATE_ID_EU", defaultTemplateEU),
		TemplateIDOther: getEnvInt64("TEMPLATE_ID_OTHER", defaultTemplateOther),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		CacheTTL:    getEnvDuration("CACHE_TTL", time.Hour),

		ServeAddr: getEnv("SERVE_ADDR", ":1234"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// validate collects every missing setting instead of stopping at the
// first, so a fresh deployment sees its whole todo list at once.
func (c *Config) validate() error {
	var errs *multierror.Error

	if c.DokanBaseURL == "" {
		errs = multierror.Append(errs, fmt.Errorf("DOKAN_BASE_URL is required"))
	}
	if c.DokanUsername == "" {
		errs = multierror.Append(errs, fmt.Errorf("DOKAN_USERNAME is required"))
	}
	if c.DokanPassword == "" {
		errs = multierror.Append(errs, fmt.Errorf("DOKAN_PASSWORD is required"))
	}
	if c.RompslompCompanyID == "" {
		errs = multierror.Append(errs, fmt.Errorf("ROMPSLOMP_COMPANY_ID is required"))
	}
	if c.RompslompAPIKey == "" {
		errs = multierror.Append(errs, fmt.Errorf("ROMPSLOMP_API_KEY is required"))
	}

	return errs.ErrorOrNil()
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
