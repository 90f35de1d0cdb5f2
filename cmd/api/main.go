package main

import (
	"os"
	"path/filepath"

	"github.com/yigit/campusportal/internal/pkg/logger"
	"github.com/yigit/campusportal/internal/server"
)

// @title Campus Portal API
// @version 1.0
// @description Backend of the campus portal: courses, enrollments, withdrawals, finance records and public content

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT session token, as "Bearer <token>"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}

	srv, err := server.NewServer(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
