package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/mateusoliveiradev1/weather-app/internal/store"
	"github.com/mateusoliveiradev1/weather-app/internal/weather"
)

// Refresher periodically re-fetches the saved place's forecast so the HTTP
// surface can answer without an upstream round trip.
type Refresher struct {
	scheduler *gocron.Scheduler
	places    store.PlaceStore
	forecasts *weather.Client
	snapshots *store.SnapshotStore
	interval  time.Duration
}

// New creates a new Refresher.
func New(places store.PlaceStore, forecasts *weather.Client, snapshots *store.SnapshotStore, interval time.Duration) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		places:    places,
		forecasts: forecasts,
		snapshots: snapshots,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first refresh runs immediately.
func (r *Refresher) Start() error {
	_, err := r.scheduler.Every(r.interval).StartImmediately().Do(r.refresh)
	if err != nil {
		return err
	}
	r.scheduler.StartAsync()
	return nil
}

func (r *Refresher) refresh() {
	place, ok := r.places.LoadPlace()
	if !ok {
		log.Println("refresher: no saved place; nothing to refresh")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := r.forecasts.Forecast(ctx, place.Latitude, place.Longitude)
	if err != nil {
		// Keep the last good snapshot on failure.
		log.Printf("refresher: fetch failed for %s: %v", place.Name, err)
		return
	}

	r.snapshots.Save(place, snap)
	log.Printf("refresher: updated forecast for %s", place.Name)
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
