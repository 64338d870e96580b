// scripts/create_admin.go
package main

import (
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Nabilbach/Classroom-Management-System-sub000/config"
	"github.com/Nabilbach/Classroom-Management-System-sub000/database"
	"github.com/Nabilbach/Classroom-Management-System-sub000/logger"
	"github.com/Nabilbach/Classroom-Management-System-sub000/models"
)

// Seeds the first admin account. Username/password come from
// ADMIN_USERNAME / ADMIN_PASSWORD, with dev defaults.
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	database.Connect(cfg)

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin1234"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to hash password")
	}

	var existing models.User
	err = database.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		logger.Get().Warn().Str("username", username).Msg("admin user already exists")
		os.Exit(0)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Get().Fatal().Err(err).Msg("failed to query users")
	}

	u := models.User{
		Username: username,
		Password: string(hashed),
		Role:     "admin",
		Name:     "Administrator",
	}
	if err := database.DB.Create(&u).Error; err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to insert admin")
	}
	logger.Get().Info().Str("username", username).Msg("admin user created; change the password after first login")
}
