// Command server runs the FAIR assessment HTTP API.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"fairmeter/internal/app"
	"fairmeter/internal/platform/config"
	"fairmeter/internal/platform/logger"
)

func main() {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := app.Run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
