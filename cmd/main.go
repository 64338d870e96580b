package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Nabilbach/Classroom-Management-System-sub000/config"
	"github.com/Nabilbach/Classroom-Management-System-sub000/database"
	"github.com/Nabilbach/Classroom-Management-System-sub000/logger"
	"github.com/Nabilbach/Classroom-Management-System-sub000/routes"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// early fail if the database file cannot be opened
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	logger.Get().Info().Str("addr", addr).Str("env", cfg.AppEnv).Msg("server listening")
	if err := e.Start(addr); err != nil {
		logger.Get().Fatal().Err(err).Msg("server stopped")
	}
}
