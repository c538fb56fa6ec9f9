package httpapi

import (
	"context"
	"errors"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-sample-server/internal/catalog"
	"github.com/i474232898/weather-sample-server/internal/common"
	"github.com/i474232898/weather-sample-server/internal/observability"
	"github.com/i474232898/weather-sample-server/internal/store"
	"github.com/i474232898/weather-sample-server/internal/weather"
)

var validate = validator.New()

// Paths are the storage roots files are served from.
type Paths struct {
	BuildDir      string // built web client
	SoundsPath    string // bell and weather effects
	GeneratedPath string // generated samples
}

// Handler serves samples from a loaded catalog. The catalog is read-only,
// so a Handler is safe for concurrent use.
type Handler struct {
	catalog        *catalog.Catalog
	weather        *weather.Service
	metrics        *observability.Metrics
	paths          Paths
	weatherTimeout time.Duration
}

// NewHandler creates a Handler. weatherTimeout bounds the weather lookup of
// each request; 0 means no extra bound.
func NewHandler(cat *catalog.Catalog, svc *weather.Service, metrics *observability.Metrics, paths Paths, weatherTimeout time.Duration) *Handler {
	return &Handler{
		catalog:        cat,
		weather:        svc,
		metrics:        metrics,
		paths:          paths,
		weatherTimeout: weatherTimeout,
	}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. The web client
// is mounted last so API routes take precedence.
func RegisterRoutes(app *fiber.App, h *Handler) {
	api := app.Group("/api")

	api.Get("/get_set", h.getSets)
	api.Get("/get_weather/:country_code/:city_name", h.getWeather)
	api.Get("/get_weather_effect/:workaround/:country_code/:city_name", h.getWeatherEffect)
	api.Get("/get_sample/:country_code/:city_name/:name/:hour", h.getSample)
	api.Get("/get_bell", h.getBell)
	api.Get("/weather/history", h.getHistory)

	if h.paths.BuildDir != "" {
		app.Static("/", h.paths.BuildDir, fiber.Static{Index: "index.html"})
	}
}

func (h *Handler) getSets(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Sets())
}

func (h *Handler) getWeather(c *fiber.Ctx) error {
	loc, err := parseLocationParams(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{"weather": h.currentWeather(c, loc.toLocation())})
}

func (h *Handler) getWeatherEffect(c *fiber.Ctx) error {
	loc, err := parseLocationParams(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	effect, file := h.catalog.Effect(h.currentWeather(c, loc.toLocation()))
	h.metrics.EffectResolved(string(effect))
	if effect == catalog.EffectNone || file == "" {
		return fiber.NewError(fiber.StatusNotFound, "no weather effect for current conditions")
	}

	return sendFrom(c, h.paths.SoundsPath, file)
}

func (h *Handler) getSample(c *fiber.Ctx) error {
	loc, err := parseLocationParams(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	name, err := pathParam(c, "name")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	hour, err := pathParam(c, "hour")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sample, err := h.catalog.Resolve(name, hour, h.currentWeather(c, loc.toLocation()))
	if err != nil {
		var unknownSet *catalog.UnknownSetError
		var unknownHour *catalog.UnknownHourError
		switch {
		case errors.As(err, &unknownSet):
			h.metrics.SampleResolved("unknown_set")
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.As(err, &unknownHour):
			h.metrics.SampleResolved("unknown_hour")
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	h.metrics.SampleResolved("ok")

	file := common.SampleFileName(sample)
	if file == "" {
		return fiber.NewError(fiber.StatusNotFound, "no sample configured for current weather")
	}
	return sendFrom(c, h.paths.GeneratedPath, file)
}

func (h *Handler) getBell(c *fiber.Ctx) error {
	return sendFrom(c, h.paths.SoundsPath, h.catalog.BellSound())
}

func (h *Handler) getHistory(c *fiber.Ctx) error {
	var req historyQuery
	if err := req.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	loc := req.Location.toLocation()
	snapshots, err := h.weather.GetRange(loc, req.From, req.To)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
	}

	return c.JSON(fiber.Map{
		"location":  loc,
		"from":      req.From,
		"to":        req.To,
		"snapshots": snapshots,
	})
}

// currentWeather never fails; the weather service falls back to the zero reading.
func (h *Handler) currentWeather(c *fiber.Ctx, loc weather.Location) weather.Reading {
	ctx := c.UserContext()
	if h.weatherTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.weatherTimeout)
		defer cancel()
	}
	return h.weather.Current(ctx, loc)
}

func sendFrom(c *fiber.Ctx, root, name string) error {
	path, err := common.JoinWithin(root, name)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "file not found")
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return err
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		log.Printf("ERROR: missing file %s", path)
		return fiber.NewError(fiber.StatusNotFound, "file not found")
	}
	return c.SendFile(path)
}

// locationQuery identifies a location by city and ISO country code.
type locationQuery struct {
	City    string `validate:"required"`
	Country string `validate:"required,alpha,len=2"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		City:    l.City,
		Country: l.Country,
	}
}

func parseLocationParams(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery
	var err error

	if q.City, err = pathParam(c, "city_name"); err != nil {
		return q, err
	}
	if q.Country, err = pathParam(c, "country_code"); err != nil {
		return q, err
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = c.Query("city")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

func pathParam(c *fiber.Ctx, key string) (string, error) {
	v, err := url.PathUnescape(c.Params(key))
	if err != nil {
		return "", errors.New("invalid " + key + " parameter")
	}
	return v, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
