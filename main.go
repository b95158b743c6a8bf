package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Taimur-DevOps/rep-backend/config"
	"github.com/Taimur-DevOps/rep-backend/handlers"
	"github.com/Taimur-DevOps/rep-backend/routes"
	"github.com/Taimur-DevOps/rep-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(filepath.Join(cfg.UploadDir, "users"), 0o755); err != nil {
		log.Fatalf("Failed to create upload directories: %v", err)
	}

	config.ConnectDB(cfg)
	config.EnsureIndexes(context.Background())

	utils.InitRedis(cfg)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(cfg)

	routes.RegisterRoutes(e, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("- Properties: %s/api/properties", cfg.AppURL)
	log.Printf("- Users: %s/api/users", cfg.AppURL)
	log.Printf("- Health check: %s/health", cfg.AppURL)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
