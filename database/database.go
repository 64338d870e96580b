package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/Nabilbach/Classroom-Management-System-sub000/config"
	"github.com/Nabilbach/Classroom-Management-System-sub000/logger"
	"github.com/Nabilbach/Classroom-Management-System-sub000/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Get().Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	DB = db

	if err := Migrate(db); err != nil {
		logger.Get().Fatal().Err(err).Msg("auto-migration failed")
	}
}

// Migrate creates/updates the schema. Split out so tests can run it against
// their own in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Section{},
		&models.Student{},
		&models.AttendanceMark{},
		&models.ScheduleEntry{},
		&models.LessonTemplate{},
		&models.User{},
	)
}
