package config

const (
	// DefaultDatabasePath is the default location of the highlights database
	DefaultDatabasePath = "./highlights.db"

	// DefaultExportDir is where markdown exports are written unless overridden
	DefaultExportDir = "./markdown"

	DefaultMaxUploadSizeMB = 10

	// DefaultAutoImportSchedule checks the watched clippings file every 15 minutes
	DefaultAutoImportSchedule = "*/15 * * * *"

	DefaultAuditDir           = "./audit"
	DefaultAuditRetentionDays = 30
)
