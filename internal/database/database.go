package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"carehome-be-svc/internal/config"
	"carehome-be-svc/internal/models"
)

// Database wraps the gorm connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a PostgreSQL connection using the provided configuration
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	return &Database{DB: db}, nil
}

// AutoMigrate runs schema migrations for all models
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&models.Resident{},
		&models.CarePlan{},
		&models.RoomType{},
		&models.CarePlanAssignment{},
		&models.AssignmentPlanLink{},
		&models.Bill{},
		&models.BillItem{},
		&models.Visit{},
		&models.VitalSign{},
		&models.Notification{},
		&models.SchedulerLog{},
	)
}

// Close closes the underlying sql.DB connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
