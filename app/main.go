package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lysyi3m/strike-cal/app/api"
	"github.com/lysyi3m/strike-cal/app/calendar"
	"github.com/lysyi3m/strike-cal/app/cfg"
	"github.com/lysyi3m/strike-cal/app/feed"
	"github.com/lysyi3m/strike-cal/app/metrics"
	"github.com/lysyi3m/strike-cal/app/profile"
	"github.com/lysyi3m/strike-cal/app/strike"
	"github.com/lysyi3m/strike-cal/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	regionProfile, err := profile.Load(appCfg.ProfilePath)
	if err != nil {
		slog.Error("Failed to load profile", "error", err)
		os.Exit(1)
	}

	clock := clockwork.NewRealClock()
	status := tasks.NewBuildStatus()
	builder := newBuilder(appCfg, regionProfile, status, clock)

	if !appCfg.Serve {
		runOnce(builder)
		return
	}

	serve(appCfg, regionProfile, builder, status, clock)
}

func newBuilder(appCfg *cfg.Cfg, regionProfile *profile.Profile, status *tasks.BuildStatus, clock clockwork.Clock) *tasks.Builder {
	geoKeywords := regionProfile.GeoKeywords
	if appCfg.GeoKeywords != nil {
		geoKeywords = appCfg.GeoKeywords
	}

	nationalModes := regionProfile.NationalModeKeywords
	if appCfg.NationalModes != nil {
		nationalModes = appCfg.NationalModes
	}

	pipeline := strike.NewPipeline(strike.Config{
		GeoKeywords:     strike.NewKeywordSet(geoKeywords),
		IncludeNational: appCfg.IncludeNational,
		NationalModes:   strike.NewKeywordSet(nationalModes),
		Classifier:      strike.NewClassifier(regionProfile.Modes.Keywords()),
		RegionSlug:      regionProfile.Region.Slug,
	})

	slog.Debug("Filter configured",
		"region", regionProfile.Region.Slug,
		"geo_keywords", len(geoKeywords),
		"include_national", appCfg.IncludeNational,
		"national_modes", len(nationalModes))

	return &tasks.Builder{
		RSSURL:     appCfg.RSSURL,
		OutputPath: appCfg.OutputPath,
		Fetcher:    feed.NewFetcher(&http.Client{}, appCfg.UserAgent, appCfg.Timeout),
		Parser:     feed.NewParser(),
		Pipeline:   pipeline,
		Generator:  calendar.NewGenerator(regionProfile.Calendar, regionProfile.Region, clock),
		Status:     status,
		Clock:      clock,
	}
}

func runOnce(builder *tasks.Builder) {
	task := tasks.NewBuildCalendarTask(builder)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		slog.Error("Calendar build failed", "rss", builder.RSSURL, "error", err)
		os.Exit(1)
	}

	slog.Info("Calendar written", "path", builder.OutputPath, "events", builder.Status.Snapshot().Events, "rss", builder.RSSURL)
}

func serve(appCfg *cfg.Cfg, regionProfile *profile.Profile, builder *tasks.Builder, status *tasks.BuildStatus, clock clockwork.Clock) {
	slog.Info("Starting strike calendar server", "version", appCfg.Version, "region", regionProfile.Region.Slug)

	builder.Metrics = metrics.NewMetrics()

	scheduler := tasks.NewScheduler(builder, appCfg.RefreshInterval, clock)
	scheduler.Start()

	handler := api.NewHandler(appCfg.OutputPath, regionProfile.Region.NameEN, appCfg.Version, status, scheduler)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port, "refresh_interval", appCfg.RefreshInterval.String())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	scheduler.Stop()
	slog.Info("Shutdown complete")
}
