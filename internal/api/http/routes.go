package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mateusoliveiradev1/weather-app/internal/geo"
	"github.com/mateusoliveiradev1/weather-app/internal/search"
	"github.com/mateusoliveiradev1/weather-app/internal/store"
	"github.com/mateusoliveiradev1/weather-app/internal/view"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *search.Service, snapshots *store.SnapshotStore) {
	v1 := app.Group("/api/v1")

	// Live search: resolve a city, persist it and return the rendered
	// view model.
	v1.Get("/forecast", func(c *fiber.Ctx) error {
		req, err := parseForecastQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := service.SearchByName(c.Context(), req.City)
		if err != nil {
			if errors.Is(err, geo.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no match for requested city")
			}
			return fiber.NewError(fiber.StatusBadGateway, "upstream weather data unavailable")
		}

		return c.JSON(fiber.Map{
			"place": res.Place,
			"view":  view.Build(res.Place.Name, res.Snapshot, res.Snapshot.Current.Time),
		})
	})

	// Cached forecast for the saved place, refreshed in the background.
	v1.Get("/current", func(c *fiber.Ctx) error {
		place, ok := service.StoredPlace()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no saved place")
		}

		entry, err := snapshots.Latest(place)
		if err != nil {
			if errors.Is(err, store.ErrNoSnapshot) {
				return fiber.NewError(fiber.StatusNotFound, "no cached forecast for saved place")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read cached forecast")
		}

		return c.JSON(fiber.Map{
			"place":     entry.Place,
			"fetchedAt": entry.FetchedAt,
			"view":      view.Build(entry.Place.Name, entry.Snapshot, entry.Snapshot.Current.Time),
		})
	})

	// The saved place itself.
	v1.Get("/place", func(c *fiber.Ctx) error {
		place, ok := service.StoredPlace()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no saved place")
		}
		return c.JSON(place)
	})
}

// forecastQuery holds query parameters for the live forecast endpoint.
type forecastQuery struct {
	City string `validate:"required,min=2"`
}

func parseForecastQuery(c *fiber.Ctx) (forecastQuery, error) {
	var q forecastQuery

	q.City = c.Query("city")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
