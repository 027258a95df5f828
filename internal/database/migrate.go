package database

import (
	"renthub/internal/models"
	"renthub/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.PasswordResetToken{},
		&models.Property{},
		&models.MaintenanceRequest{},
		&models.Tenant{},
		&models.Document{},
	)

	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")
	return nil
}
