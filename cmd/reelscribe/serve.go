package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"reelscribe/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline over HTTP",
	Long: `Starts an HTTP API that runs pipeline batches in the background:
POST /start_processing starts a run, GET /status/:session_id reports its
progress, and GET /download/:session_id serves the finished report.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.ServerAddr
	}

	orch := buildPipeline(cfg, log)
	srv := server.New(orch, 10, log)

	log.Infow("serving", "addr", addr)
	return srv.Router().Run(addr)
}
