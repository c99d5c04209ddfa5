package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Logging
		Export
		AutoImport
		Audit
	}

	HTTP struct {
		Port            int32
		Host            string
		MaxUploadSizeMB int64
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Logging struct {
		Level  string
		Format string // "console" or "json"
	}
	Export struct {
		Dir string // Directory for markdown exports
	}
	AutoImport struct {
		Enabled  bool
		Path     string // Clippings file watched by the scheduler
		Schedule string // Cron format: "*/15 * * * *" = every 15 minutes
	}
	Audit struct {
		Dir           string // Overwrite snapshots
		RetentionDays int    // 0 keeps history forever
	}
)

// MaxUploadBytes returns the upload limit in bytes.
func (h HTTP) MaxUploadBytes() int64 {
	return h.MaxUploadSizeMB << 20
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("max_upload_size_mb", DefaultMaxUploadSizeMB)
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("export_dir", DefaultExportDir)
	v.SetDefault("auto_import_enabled", false)
	v.SetDefault("auto_import_path", "")
	v.SetDefault("auto_import_schedule", DefaultAutoImportSchedule)
	v.SetDefault("audit_dir", DefaultAuditDir)
	v.SetDefault("audit_retention_days", DefaultAuditRetentionDays)

	return &Config{
		HTTP: HTTP{
			Port:            v.GetInt32("PORT"),
			Host:            v.GetString("HOST"),
			MaxUploadSizeMB: v.GetInt64("MAX_UPLOAD_SIZE_MB"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Logging: Logging{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Export: Export{
			Dir: v.GetString("EXPORT_DIR"),
		},
		AutoImport: AutoImport{
			Enabled:  v.GetBool("AUTO_IMPORT_ENABLED"),
			Path:     v.GetString("AUTO_IMPORT_PATH"),
			Schedule: v.GetString("AUTO_IMPORT_SCHEDULE"),
		},
		Audit: Audit{
			Dir:           v.GetString("AUDIT_DIR"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
	}
}
