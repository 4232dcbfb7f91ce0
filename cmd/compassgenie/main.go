package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"google.golang.org/genai"

	"github.com/Cyclone1070/compassgenie/internal/agent"
	"github.com/Cyclone1070/compassgenie/internal/agent/adapter"
	"github.com/Cyclone1070/compassgenie/internal/airquality"
	"github.com/Cyclone1070/compassgenie/internal/config"
	"github.com/Cyclone1070/compassgenie/internal/maps"
	"github.com/Cyclone1070/compassgenie/internal/provider/gemini"
	provider "github.com/Cyclone1070/compassgenie/internal/provider/models"
	"github.com/Cyclone1070/compassgenie/internal/server"
	"github.com/Cyclone1070/compassgenie/internal/tools/aqi"
	"github.com/Cyclone1070/compassgenie/internal/tools/places"
	"github.com/Cyclone1070/compassgenie/internal/tools/websearch"
)

var (
	addrFlag    string
	debug       bool
	showVersion bool

	buildVersion = "0.1.0"
)

func init() {
	flag.StringVar(&addrFlag, "addr", "", "Listen address (overrides config)")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "Display version information")
}

func main() {
	flag.Parse()

	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if showVersion {
		fmt.Printf("compassgenie %s\n", buildVersion)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		cfg = config.DefaultConfig()
		cfg.GeminiAPIKey = os.Getenv(config.EnvGeminiAPIKey)
		cfg.MapsAPIKey = os.Getenv(config.EnvMapsAPIKey)
	}
	if addrFlag != "" {
		cfg.Server.Addr = addrFlag
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, /chat will return 503")
	}
	if cfg.MockMapsEnabled() {
		logger.Info("MAPS_API_KEY not set, serving mock map results")
	}

	a, err := buildAgent(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize agent", "error", err)
		os.Exit(1)
	}

	srv := server.New(server.Config{Addr: cfg.Server.Addr}, a, logger)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// buildAgent wires the provider, the external-service clients and the tool
// catalog into an Agent. A missing Gemini credential produces an agent with
// a nil provider rather than an error.
func buildAgent(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*agent.Agent, error) {
	var p provider.Provider
	if cfg.GeminiAPIKey != "" {
		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.GeminiAPIKey})
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}
		p = gemini.New(gemini.NewRealClient(genaiClient), cfg.LLM.Model, cfg.LLM.Temperature)
	}

	mapsClient := maps.NewClient(maps.Options{
		APIKey:            cfg.MapsAPIKey,
		Logger:            logger,
		RequestsPerSecond: cfg.Maps.RequestsPerSecond,
		Burst:             cfg.Maps.Burst,
		SearchTimeout:     time.Duration(cfg.Maps.SearchTimeoutSeconds) * time.Second,
		GeocodeTimeout:    time.Duration(cfg.Maps.GeocodeTimeoutSeconds) * time.Second,
	})

	airClient := airquality.NewClient(airquality.Options{
		APIKey:            cfg.MapsAPIKey,
		Logger:            logger,
		RequestsPerSecond: cfg.AirQuality.RequestsPerSecond,
		Burst:             cfg.AirQuality.Burst,
		Timeout:           time.Duration(cfg.AirQuality.TimeoutSeconds) * time.Second,
	})

	// Interface conversion keeps the nil check meaningful inside the tools.
	var advisor places.Advisor
	if p != nil {
		advisor = p
	}

	placesTool := places.New(mapsClient, advisor, logger, cfg.Maps.RadiusMeters)
	aqiTool := aqi.New(airClient, mapsClient, logger)
	searchTool := websearch.New(advisor, logger)

	tools := []adapter.Tool{
		adapter.NewMapsSearch(placesTool),
		adapter.NewAirQuality(aqiTool),
		adapter.NewWebSearch(searchTool),
	}

	return agent.New(p, tools, cfg.Agent.MaxIterations, logger), nil
}
