package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gradekit/gradeboard/internal/analytics"
	"github.com/gradekit/gradeboard/internal/dashboard"
	"github.com/gradekit/gradeboard/internal/server"
	"github.com/gradekit/gradeboard/pkg/httputil"
	"github.com/gradekit/gradeboard/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long: `Starts the HTTP server that renders the grade analysis dashboard.

This command:
- Serves the dashboard page built from the analytics document
- Exposes the raw analytics document as JSON
- Provides a health check endpoint

Endpoints:
  GET  /                          - Dashboard page
  GET  /grade_analysis_data.json  - Raw analytics document
  GET  /healthz                   - Health check

Example:
  go run ./cmd/gradeboard serve
  go run ./cmd/gradeboard serve --port 8080 --data ./out/grade_analysis_data.json`,
	RunE: runServe,
}

var (
	servePort   string
	serveData   string
	serveStrict bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "server port (overrides PORT)")
	serveCmd.Flags().StringVar(&serveData, "data", "", "analytics document path or URL (overrides DATA_SOURCE)")
	serveCmd.Flags().BoolVar(&serveStrict, "strict", false, "reject documents that fail schema validation")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Gradeboard Dashboard Server ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flag overrides
	if servePort != "" {
		cfg.Port = servePort
	}
	if serveData != "" {
		cfg.DataSource = serveData
	}
	if serveStrict {
		cfg.StrictSchema = true
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port":   cfg.Port,
		"env":    cfg.Env,
		"source": cfg.DataSource,
	}).Info("Initializing dashboard server")

	// 3. Create HTTP client and document loader
	httpClient := httputil.New(cfg, log)
	loader := analytics.NewLoader(cfg.DataSource, httpClient, log)

	// 4. Create rendering pipeline
	pipeline := dashboard.NewPipeline(loader, cfg.StrictSchema, log)

	// 5. Create router and server
	router := server.NewRouter(pipeline, loader, cfg, log)
	srv := server.New(cfg, log, router)

	// 6. Start server with graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("Dashboard server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /")
	fmt.Println("  GET  /grade_analysis_data.json")
	fmt.Println("  GET  /healthz")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
