package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cinema-catalog/pkg/utils"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.InitLogger("catalogctl", config.App.LogPath, config.App.Debug)
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := newRunner(config, logger, os.Stdout)

	app := &cli.Command{
		Name:     "catalogctl",
		Usage:    "Maintain the cinema movie catalog",
		After:    r.close,
		Commands: r.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Error("Command failed", zap.Error(err))
		os.Exit(1)
	}
}
