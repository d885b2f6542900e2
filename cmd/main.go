package main

import (
	"log/slog"

	"github.com/skylinedemo/skyline-console/internal/app/cli"
	"github.com/skylinedemo/skyline-console/internal/app/config"
	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/pkg/logger"
)

func main() {
	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))

	if err := dto.InitValidator(); err != nil {
		slog.Error("failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	cli.Execute(cfg)
}
