package main

import (
	"context"
	"log"

	"github.com/prometheus/client_golang/prometheus"

	httpserver "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/telemetry"
	"taskboard/pkg/config"
	"taskboard/pkg/logger"
)

const serviceVersion = "1.0.0"

func main() {
	ctx := context.Background()

	cfg := config.MustLoad()

	appLogger, err := logger.New(cfg.Logger, cfg.Environment)

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer appLogger.Sync()

	var metrics *telemetry.AppMetrics

	if cfg.Telemetry.Enabled {
		tel, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:    cfg.AppName,
			ServiceVersion: serviceVersion,
			Environment:    cfg.Environment,
			MetricsPort:    cfg.Telemetry.MetricsPort,
			OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		})

		if err != nil {
			log.Fatal("Failed to initialize telemetry:", err)
		}

		defer tel.Shutdown(ctx)

		metrics = tel.Metrics
	} else {
		metrics = telemetry.NewAppMetrics(prometheus.NewRegistry())
	}

	if err := httpserver.StartServer(ctx, cfg, metrics, appLogger); err != nil {
		log.Fatal("Server failed:", err)
	}
}
