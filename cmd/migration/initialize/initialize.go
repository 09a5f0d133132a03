package initialize

import (
	"staffdir/config"
	"staffdir/internal/logger"
	. "staffdir/internal/models"

	"gorm.io/gorm"
)

// InitializeTables lets GORM reconcile the schema with the models, picking up
// columns added after the SQL baseline migration.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Reconciling schema with models")

	if err := db.AutoMigrate(&Employee{}); err != nil {
		return log.Err("failed to migrate employee table", err)
	}

	log.Info("Table initialization complete")
	return nil
}
