package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"time"

	"course-studio/internal/analytics"
	"course-studio/internal/config"
	"course-studio/internal/handoff"
	"course-studio/internal/httpapi"
	"course-studio/internal/logger"
	"course-studio/internal/wizard"
)

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	flag.Parse()

	appLog, err := logger.New(cfg.Mode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer appLog.Sync()

	tracker := analytics.MultiTracker{analytics.NewLogTracker(appLog)}

	var recorder *analytics.Recorder
	if cfg.RecordEvents {
		recorder, err = analytics.NewRecorder(cfg.EventsDBPath, appLog)
		if err != nil {
			appLog.Fatal("failed to open event recorder", "path", cfg.EventsDBPath, "error", err)
		}
		defer recorder.Close()
		tracker = append(tracker, recorder)
	}

	registry := wizard.NewRegistry(wizard.Config{
		Logger:       appLog,
		Tracker:      tracker,
		UploadDelay:  cfg.UploadDelay,
		HighlightTTL: cfg.HighlightTTL,
	})

	router := httpapi.NewRouter(httpapi.Config{
		Registry:      registry,
		Loader:        handoff.NewLoader(nil),
		Recorder:      recorder,
		Logger:        appLog,
		SessionSecret: cfg.SessionSecret,
		RoadmapPath:   cfg.RoadmapPath,
		AllowedOrigin: cfg.AllowedOrigin,
	})

	server := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	appLog.Info("studio-service listening", "addr", *addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.Fatal("server failed", "error", err)
	}
}
