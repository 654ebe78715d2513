// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cinema-catalog/cmd"
	"cinema-catalog/internal/wire"
	"cinema-catalog/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := cmd.Bootstrap(ctx, config, logger)
	if err != nil {
		logger.Fatal("Failed to initialise runtime", zap.Error(err))
	}
	defer rt.Close()

	app := wire.Wiring(rt.DB, rt.Repo, config, rt.Infra, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
