package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lmarchou/BENounou/config"
	"github.com/lmarchou/BENounou/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.Child{},
		&models.Contract{},
		&models.Attendance{},
		&models.DailyRecord{},
		&models.Message{},
		&models.User{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}

	// The legacy store used a NOT NULL TIME column with 00:00:00 as
	// its "unset" marker. Rewrite those rows once so new code only
	// sees NULL for missing departures/arrivals.
	if DB.Migrator().HasTable(&models.Attendance{}) {
		if err := DB.Model(&models.Attendance{}).
			Where("departure_time = ?", "00:00:00").
			Update("departure_time", nil).Error; err != nil {
			log.Printf("[migrate] warn: clear legacy departure sentinel failed: %v", err)
		}
		if err := DB.Model(&models.Attendance{}).
			Where("arrival_time = ? AND status <> ?", "00:00:00", models.AttendancePresent).
			Update("arrival_time", nil).Error; err != nil {
			log.Printf("[migrate] warn: clear legacy arrival sentinel failed: %v", err)
		}
	}
}
