package main

import (
	"github.com/spf13/cobra"

	"fairmeter/internal/app"
	"fairmeter/internal/platform/config"
	"fairmeter/internal/platform/logger"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assessment HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "listen address (defaults to FAIRMETER_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if serveFlags.addr != "" {
		cfg.Server.Addr = serveFlags.addr
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	return app.Run(cfg, log)
}
