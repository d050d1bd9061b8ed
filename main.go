package main

import (
	"context"
	"strings"
	"time"

	"website_speed_test/internal/application/config"
	"website_speed_test/internal/http"

	log "github.com/sirupsen/logrus"
)

func main() {
	logInstance := log.New()
	cfg, err := config.NewAppConfig()
	if err != nil {
		logInstance.WithError(err).Fatal(`Failed to load config`)
		return
	}

	//log level
	logLevel, err := log.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		logInstance.WithError(err).Fatal(`Failed to parse log level`)
		return
	}

	logInstance.SetFormatter(&log.JSONFormatter{
		TimestampFormat:   time.RFC3339,
		DisableHTMLEscape: true,
		DisableTimestamp:  false,
	})

	logInstance.SetLevel(logLevel)

	// Get context
	ctx := context.WithoutCancel(context.Background())

	// Init HTTP
	if err := http.Init(ctx, logInstance, cfg); err != nil {
		logInstance.WithError(err).Fatal(`Server stopped with error`)
	}
}
