package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/skycastapp/skycast/internal/forecast"
	"github.com/skycastapp/skycast/internal/weatherapi"
)

// Status describes the coordinator's fetch lifecycle.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Unit is the temperature unit preference. Display-only: it picks which
// pre-computed payload field is read, stored data is never converted.
type Unit string

const (
	UnitCelsius    Unit = "celsius"
	UnitFahrenheit Unit = "fahrenheit"
)

// FetchFailedMessage is the fixed user-facing message for any upstream
// failure. The underlying cause is logged, never surfaced verbatim.
const FetchFailedMessage = "Failed to fetch weather data. Please check your API key and try again."

// searchResultLimit caps autocomplete results shown to the user.
const searchResultLimit = 5

// Coordinator owns the dashboard's mutable state and orchestrates
// fetch, transform and render. Every other package is pure; this is the
// only component that performs I/O.
type Coordinator struct {
	provider weatherapi.Provider
	logger   *slog.Logger

	mu      sync.Mutex
	seq     uint64
	status  Status
	unit    Unit
	view    forecast.View
	query   string
	weather *weatherapi.ForecastResponse
	lastErr string
}

// Snapshot is a consistent copy of coordinator state for rendering.
type Snapshot struct {
	Status  Status
	Unit    Unit
	View    forecast.View
	Query   string
	Weather *weatherapi.ForecastResponse
	LastErr string
}

// New creates a coordinator around a weather provider.
func New(provider weatherapi.Provider, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		provider: provider,
		logger:   logger,
		status:   StatusIdle,
		unit:     UnitCelsius,
		view:     forecast.ViewToday,
	}
}

// LoadLocation fetches weather for a location query and replaces location,
// conditions and forecast wholesale on success. Overlapping loads are
// resolved by a monotonic sequence: only the most recently issued load may
// commit its result, so a slow stale response cannot overwrite a newer one.
func (c *Coordinator) LoadLocation(ctx context.Context, query string) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.status = StatusLoading
	c.lastErr = ""
	c.mu.Unlock()

	resp, err := c.provider.Forecast(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// Superseded by a newer load while in flight.
		return nil
	}
	if err != nil {
		c.logger.Error("weather fetch failed", "query", query, "error", err)
		c.status = StatusError
		c.lastErr = FetchFailedMessage
		return errors.New(FetchFailedMessage)
	}

	c.status = StatusReady
	c.weather = resp
	c.query = fmt.Sprintf("%s, %s", resp.Location.Name, resp.Location.Country)
	return nil
}

// Refresh re-fetches weather for the currently held location.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.mu.Lock()
	query := c.query
	c.mu.Unlock()

	if query == "" {
		return errors.New("no location loaded")
	}
	return c.LoadLocation(ctx, query)
}

// Search looks up location matches for autocomplete. Queries shorter than
// two characters and provider failures both degrade to zero results so a
// typing user never sees an error banner.
func (c *Coordinator) Search(ctx context.Context, query string) []weatherapi.Location {
	if len(query) < 2 {
		return []weatherapi.Location{}
	}

	locs, err := c.provider.Search(ctx, query)
	if err != nil {
		c.logger.Warn("location search failed", "query", query, "error", err)
		return []weatherapi.Location{}
	}
	if locs == nil {
		locs = []weatherapi.Location{}
	}
	if len(locs) > searchResultLimit {
		locs = locs[:searchResultLimit]
	}
	return locs
}

// ToggleUnit flips the temperature unit preference. No I/O.
func (c *Coordinator) ToggleUnit() Unit {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unit == UnitCelsius {
		c.unit = UnitFahrenheit
	} else {
		c.unit = UnitCelsius
	}
	return c.unit
}

// SetView updates the active forecast view. No I/O.
func (c *Coordinator) SetView(v forecast.View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
}

// Snapshot returns a consistent copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Status:  c.status,
		Unit:    c.unit,
		View:    c.view,
		Query:   c.query,
		Weather: c.weather,
		LastErr: c.lastErr,
	}
}
