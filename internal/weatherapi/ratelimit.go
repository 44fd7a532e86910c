package weatherapi

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Provider with client-side rate limiting so that
// keystroke-driven search traffic stays inside the upstream request budget.
// Results and errors are forwarded unchanged; only pacing differs.
type RateLimited struct {
	provider Provider
	limiter  *rate.Limiter
}

var _ Provider = (*RateLimited)(nil)

// NewRateLimited creates a rate limited provider. rps is the maximum
// requests per second allowed (can be fractional); burst is the maximum
// burst size allowed.
func NewRateLimited(provider Provider, rps float64, burst int) *RateLimited {
	return &RateLimited{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Forecast fetches forecast data, respecting rate limits.
func (r *RateLimited) Forecast(ctx context.Context, query string) (*ForecastResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Forecast(ctx, query)
}

// Search looks up locations, respecting rate limits.
func (r *RateLimited) Search(ctx context.Context, query string) ([]Location, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Search(ctx, query)
}
