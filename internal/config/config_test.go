package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "MARKETPLACE_API_URL", "MARKETPLACE_API_TOKEN", "MARKETPLACE_TIMEOUT",
		"MARKETPLACE_RETRY_COUNT", "MARKETPLACE_RETRY_WAIT", "GRADE_ALIASES_FILE",
		"LOOKUP_CONCURRENCY", "IMPORT_SESSION_TTL", "GOOGLE_SHEETS_CREDENTIALS_PATH",
		"GOOGLE_SHEET_PRICE_LIST_ID", "GOOGLE_SHEET_PRICE_LIST_RANGE", "SHEET_SYNC_CRON",
		"TIMEZONE", "SHEET_SYNC_OVERWRITE", "WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID",
		"WHATSAPP_BASE_URL", "WHATSAPP_API_VERSION", "WHATSAPP_NOTIFY_TO", "MONGODB_URI",
		"MONGODB_DB_NAME", "LOG_LEVEL",
	} {
		// Setenv registers the restore; godotenv only fills unset keys.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeEnv(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeEnv(t, "MARKETPLACE_API_URL=https://api.example.com/v1\n"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://api.example.com/v1", cfg.Marketplace.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Marketplace.Timeout)
	assert.Equal(t, 2, cfg.Marketplace.RetryCount)
	assert.Equal(t, 8, cfg.Import.LookupConcurrency)
	assert.Equal(t, 30*time.Minute, cfg.Import.SessionTTL)
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.Empty(t, cfg.MongoDB.URI)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("MARKETPLACE_API_URL", "http://localhost:3000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.Marketplace.BaseURL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("missing marketplace url", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(writeEnv(t, "APP_PORT=9000\n"))
		assert.ErrorContains(t, err, "MARKETPLACE_API_URL")
	})

	t.Run("unparsable duration", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(writeEnv(t, "MARKETPLACE_API_URL=http://x\nMARKETPLACE_TIMEOUT=soon\n"))
		assert.ErrorContains(t, err, "MARKETPLACE_TIMEOUT")
	})

	t.Run("sync without sheet", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(writeEnv(t, "MARKETPLACE_API_URL=http://x\nSHEET_SYNC_CRON=0 6 * * *\n"))
		assert.ErrorContains(t, err, "SHEET_SYNC_CRON")
	})

	t.Run("notify without token", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(writeEnv(t, "MARKETPLACE_API_URL=http://x\nWHATSAPP_NOTIFY_TO=263771234567\n"))
		assert.ErrorContains(t, err, "WHATSAPP_TOKEN")
	})
}

func TestValidateNil(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}
