package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/yigit/refbase/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/refbase/internal/server"
)

// @title RefBase API
// @version 1.0
// @description API for the volleyball referee roster, availability and nomination app

// @contact.name API Support
// @contact.email support@refbase.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Load .env before anything reads the environment; a missing file is fine
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, relying on the environment")
	}

	// Initialize the server with all its dependencies
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	// If Run completes without error, it means graceful shutdown was successful.
	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
