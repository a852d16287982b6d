package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	httpapi "github.com/mateusoliveiradev1/weather-app/internal/api/http"
	"github.com/mateusoliveiradev1/weather-app/internal/config"
	"github.com/mateusoliveiradev1/weather-app/internal/geo"
	"github.com/mateusoliveiradev1/weather-app/internal/scheduler"
	"github.com/mateusoliveiradev1/weather-app/internal/search"
	"github.com/mateusoliveiradev1/weather-app/internal/store"
	"github.com/mateusoliveiradev1/weather-app/internal/ui"
	"github.com/mateusoliveiradev1/weather-app/internal/weather"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "weather-app",
		Short: "City weather lookup with autocomplete",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
	root.AddCommand(serveCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the forecast view model over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

// buildServices wires the clients, store and orchestration service shared
// by both surfaces.
func buildServices(cfg *config.AppConfig) (*search.Service, store.PlaceStore, *weather.Client, func()) {
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var places store.PlaceStore
	cleanup := func() {}

	if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o755); err != nil {
		log.Printf("place store: cannot create %s: %v; last city will not persist", filepath.Dir(cfg.StorePath), err)
		places = store.Noop{}
	} else if s, err := store.NewSQLite(cfg.StorePath); err != nil {
		// Storage being unavailable must never block the app.
		log.Printf("place store: open failed: %v; last city will not persist", err)
		places = store.Noop{}
	} else {
		places = s
		cleanup = func() { s.Close() }
	}

	geocoder := geo.NewClient(httpClient, cfg.GeocodingURL, cfg.Language)
	forecasts := weather.NewClient(httpClient, cfg.ForecastURL)
	service := search.NewService(geocoder, forecasts, places, cfg.DefaultCity)

	return service, places, forecasts, cleanup
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	service, _, _, cleanup := buildServices(cfg)
	defer cleanup()

	program := tea.NewProgram(ui.New(service, cfg.SuggestDebounce, cfg.HTTPTimeout), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	service, places, forecasts, cleanup := buildServices(cfg)
	defer cleanup()

	snapshots := store.NewSnapshotStore()

	// Background refresh of the saved place's forecast.
	refresher := scheduler.New(places, forecasts, snapshots, cfg.RefreshInterval)
	if err := refresher.Start(); err != nil {
		return err
	}
	defer refresher.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-app",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-app",
		})
	})

	httpapi.RegisterRoutes(app, service, snapshots)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}
