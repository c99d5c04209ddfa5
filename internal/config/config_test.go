package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "HOST", "DATABASE_PATH", "LOG_LEVEL", "AUTO_IMPORT_ENABLED", "MAX_UPLOAD_SIZE_MB", "AUDIT_DIR", "AUDIT_RETENTION_DAYS"} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 2, cfg.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, DefaultExportDir, cfg.Export.Dir)
	assert.False(t, cfg.AutoImport.Enabled)
	assert.Equal(t, DefaultAutoImportSchedule, cfg.AutoImport.Schedule)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Equal(t, DefaultAuditDir, cfg.Audit.Dir)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/data/keeper.db")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "2")
	t.Setenv("AUTO_IMPORT_ENABLED", "true")
	t.Setenv("AUTO_IMPORT_PATH", "/kindle/My Clippings.txt")
	t.Setenv("AUTO_IMPORT_SCHEDULE", "0 * * * *")
	t.Setenv("AUDIT_DIR", "/data/audit")
	t.Setenv("AUDIT_RETENTION_DAYS", "0")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.Port)
	assert.Equal(t, "/data/keeper.db", cfg.Database.Path)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadBytes())
	assert.True(t, cfg.AutoImport.Enabled)
	assert.Equal(t, "/kindle/My Clippings.txt", cfg.AutoImport.Path)
	assert.Equal(t, "0 * * * *", cfg.AutoImport.Schedule)
	assert.Equal(t, "/data/audit", cfg.Audit.Dir)
	assert.Zero(t, cfg.Audit.RetentionDays)
}
