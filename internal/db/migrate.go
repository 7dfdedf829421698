package db

import (
	"connplanner/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		// master data first so weak refs resolve
		&models.SourceName{},
		&models.RunName{},
		&models.ReportType{},
		&models.ReportName{},
		&models.Fund{},
		&models.FundAlias{},
		&models.Connection{},
		&models.Planner{},
		&models.PlannerFund{},
		&models.PlannerSource{},
		&models.PlannerRun{},
		&models.PlannerReport{},
		&models.ActivityLog{},
	)
}
