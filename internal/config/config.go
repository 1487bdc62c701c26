package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server      ServerConfig
	Marketplace MarketplaceConfig
	Import      ImportConfig
	Sheets      SheetsConfig
	Sync        SyncConfig
	WhatsApp    WhatsAppConfig
	MongoDB     MongoDBConfig
	Log         LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MarketplaceConfig points at the marketplace backend that owns price lists,
// the farm-produce catalog and user accounts.
type MarketplaceConfig struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

// ImportConfig tunes spreadsheet import.
type ImportConfig struct {
	// AliasesPath optionally names a YAML file extending the grade label tables.
	AliasesPath string
	// LookupConcurrency bounds in-flight farm-produce searches per import.
	LookupConcurrency int
	// SessionTTL is how long an unapplied import stays available.
	SessionTTL time.Duration
}

// SheetsConfig contains configuration required to read the price list from Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether a Google Sheet source is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// SyncConfig holds the scheduled sheet sync settings.
type SyncConfig struct {
	CronSchedule string
	Timezone     string
	Overwrite    bool
}

// WhatsAppConfig contains credentials for the Meta WhatsApp Cloud API used to
// notify operators of sync outcomes.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	NotifyTo      string
}

// Enabled reports whether sync notifications can be sent.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != "" && c.PhoneNumberID != "" && c.NotifyTo != ""
}

// MongoDBConfig holds settings for MongoDB. An empty URI disables import history.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	var errs []error
	durationVar := func(key, fallback string) time.Duration {
		d, err := time.ParseDuration(getenvWithDefault(key, fallback))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}
	intVar := func(key, fallback string) int {
		n, err := strconv.Atoi(getenvWithDefault(key, fallback))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return n
	}
	boolVar := func(key, fallback string) bool {
		b, err := strconv.ParseBool(getenvWithDefault(key, fallback))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return b
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Marketplace: MarketplaceConfig{
			BaseURL:    os.Getenv("MARKETPLACE_API_URL"),
			Token:      os.Getenv("MARKETPLACE_API_TOKEN"),
			Timeout:    durationVar("MARKETPLACE_TIMEOUT", "15s"),
			RetryCount: intVar("MARKETPLACE_RETRY_COUNT", "2"),
			RetryWait:  durationVar("MARKETPLACE_RETRY_WAIT", "500ms"),
		},
		Import: ImportConfig{
			AliasesPath:       os.Getenv("GRADE_ALIASES_FILE"),
			LookupConcurrency: intVar("LOOKUP_CONCURRENCY", "8"),
			SessionTTL:        durationVar("IMPORT_SESSION_TTL", "30m"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_PRICE_LIST_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_PRICE_LIST_RANGE", "Prices!A1:H200"),
		},
		Sync: SyncConfig{
			CronSchedule: os.Getenv("SHEET_SYNC_CRON"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Harare"),
			Overwrite:    boolVar("SHEET_SYNC_OVERWRITE", "false"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			NotifyTo:      os.Getenv("WHATSAPP_NOTIFY_TO"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "livestock_pricing"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Marketplace.BaseURL == "" {
		return errors.New("MARKETPLACE_API_URL must be provided")
	}
	if !strings.HasPrefix(c.Marketplace.BaseURL, "http://") && !strings.HasPrefix(c.Marketplace.BaseURL, "https://") {
		return fmt.Errorf("MARKETPLACE_API_URL must be an http(s) URL, got %q", c.Marketplace.BaseURL)
	}
	if c.Marketplace.Timeout <= 0 {
		return errors.New("MARKETPLACE_TIMEOUT must be positive")
	}
	if c.Marketplace.RetryCount < 0 {
		return errors.New("MARKETPLACE_RETRY_COUNT must not be negative")
	}

	if c.Import.LookupConcurrency < 1 {
		return errors.New("LOOKUP_CONCURRENCY must be at least 1")
	}
	if c.Import.SessionTTL <= 0 {
		return errors.New("IMPORT_SESSION_TTL must be positive")
	}

	if c.Sync.CronSchedule != "" && !c.Sheets.Enabled() {
		return errors.New("SHEET_SYNC_CRON requires GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_PRICE_LIST_ID")
	}
	if c.Sheets.Enabled() && c.Sheets.Range == "" {
		return errors.New("GOOGLE_SHEET_PRICE_LIST_RANGE must not be empty")
	}
	if c.Sync.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.WhatsApp.NotifyTo != "" {
		switch {
		case c.WhatsApp.AccessToken == "":
			return errors.New("WHATSAPP_TOKEN must be provided when WHATSAPP_NOTIFY_TO is set")
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided when WHATSAPP_NOTIFY_TO is set")
		}
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
