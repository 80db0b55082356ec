package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobmatch_backend/internal/config"
	"jobmatch_backend/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm opens the GORM connection using the configured DSN.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates every engine model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Candidate{},
		&models.SkillScore{},
		&models.AssessmentAttempt{},
		&models.Job{},
		&models.SkillRequirement{},
		&models.Application{},
		&models.Preference{},
		&models.JobView{},
		&models.JobBookmark{},
		&models.UserSimilarity{},
		&models.Recommendation{},
	)
}
