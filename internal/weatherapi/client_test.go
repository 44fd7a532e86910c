package weatherapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockRoundTripper is a custom RoundTripper for testing
type mockRoundTripper struct {
	handler http.Handler
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := httptest.NewRecorder()
	m.handler.ServeHTTP(rec, req)
	return rec.Result(), nil
}

func testClient(handler http.Handler) *Client {
	return &Client{
		APIKey:  "test-key",
		BaseURL: "https://example.test/v1",
		HTTPClient: &http.Client{
			Transport: &mockRoundTripper{handler: handler},
		},
	}
}

const forecastFixture = `{
	"location": {"name": "London", "country": "United Kingdom"},
	"current": {
		"temp_c": 15.0, "temp_f": 59.0,
		"feelslike_c": 14.0, "feelslike_f": 57.2,
		"condition": {"text": "Partly cloudy", "icon": "//cdn.weatherapi.com/weather/64x64/day/116.png", "code": 1003},
		"wind_kph": 13.0, "wind_degree": 225, "wind_dir": "SW",
		"pressure_mb": 1015.0, "humidity": 65, "vis_km": 10.0, "uv": 3.0
	},
	"forecast": {
		"forecastday": [
			{
				"date": "2023-11-05",
				"date_epoch": 1699142400,
				"day": {
					"maxtemp_c": 18.0, "maxtemp_f": 64.4,
					"mintemp_c": 10.0, "mintemp_f": 50.0,
					"avgtemp_c": 14.0, "avgtemp_f": 57.2,
					"condition": {"text": "Partly cloudy", "icon": "//cdn.weatherapi.com/weather/64x64/day/116.png", "code": 1003},
					"maxwind_kph": 20.1, "avghumidity": 65.0,
					"daily_chance_of_rain": 10, "uv": 3.0
				},
				"astro": {
					"sunrise": "07:14 AM", "sunset": "04:26 PM",
					"moonrise": "09:45 PM", "moonset": "02:15 PM",
					"moon_phase": "Waning Crescent", "moon_illumination": "15"
				},
				"hour": [
					{
						"time_epoch": 1699200000, "time": "2023-11-05 14:00",
						"temp_c": 15.0, "temp_f": 59.0,
						"condition": {"text": "Partly cloudy", "icon": "//cdn.weatherapi.com/weather/64x64/day/116.png", "code": 1003},
						"wind_kph": 13.0, "wind_dir": "SW", "pressure_mb": 1015.0,
						"humidity": 65, "cloud": 50, "chance_of_rain": 10,
						"vis_km": 10.0, "gust_kph": 20.2, "uv": 3.0
					},
					{
						"time_epoch": 1699203600, "time": "2023-11-05 15:00",
						"temp_c": 16.0, "temp_f": 60.8,
						"condition": {"text": "Sunny", "icon": "//cdn.weatherapi.com/weather/64x64/day/113.png", "code": 1000},
						"wind_kph": 12.1, "wind_dir": "SW", "pressure_mb": 1016.0,
						"humidity": 60, "cloud": 25, "chance_of_rain": 5,
						"vis_km": 10.0, "gust_kph": 17.7, "uv": 2.0
					}
				]
			},
			{
				"date": "2023-11-06",
				"date_epoch": 1699228800,
				"day": {
					"maxtemp_c": 20.0, "maxtemp_f": 68.0,
					"mintemp_c": 12.0, "mintemp_f": 53.6,
					"condition": {"text": "Sunny", "icon": "//cdn.weatherapi.com/weather/64x64/day/113.png", "code": 1000},
					"maxwind_kph": 16.1, "avghumidity": 60.0
				},
				"astro": {"sunrise": "07:15 AM", "sunset": "04:25 PM"},
				"hour": []
			}
		]
	}
}`

// TestForecast_RequestParams tests that the forecast request carries the
// documented query parameters
func TestForecast_RequestParams(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/forecast.json" {
			t.Errorf("expected path /v1/forecast.json, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("key") != "test-key" {
			t.Errorf("expected key=test-key, got %s", q.Get("key"))
		}
		if q.Get("q") != "London, UK" {
			t.Errorf("expected q=London, UK, got %s", q.Get("q"))
		}
		if q.Get("days") != "7" {
			t.Errorf("expected days=7, got %s", q.Get("days"))
		}
		if q.Get("aqi") != "no" {
			t.Errorf("expected aqi=no, got %s", q.Get("aqi"))
		}
		if q.Get("alerts") != "no" {
			t.Errorf("expected alerts=no, got %s", q.Get("alerts"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastFixture))
	})

	client := testClient(handler)
	if _, err := client.Forecast(context.Background(), "London, UK"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestForecast_DecodesPayload tests decoding of the full forecast payload
func TestForecast_DecodesPayload(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastFixture))
	})

	client := testClient(handler)
	fr, err := client.Forecast(context.Background(), "London")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fr.Location.Name != "London" || fr.Location.Country != "United Kingdom" {
		t.Errorf("unexpected location: %+v", fr.Location)
	}
	if fr.Current.TempC != 15.0 {
		t.Errorf("expected temp_c 15.0 exactly, got %v", fr.Current.TempC)
	}
	if fr.Current.Condition.Code != 1003 {
		t.Errorf("expected condition code 1003, got %d", fr.Current.Condition.Code)
	}
	if len(fr.Forecast.Forecastday) != 2 {
		t.Fatalf("expected 2 forecast days, got %d", len(fr.Forecast.Forecastday))
	}

	day0 := fr.Forecast.Forecastday[0]
	if day0.Date != "2023-11-05" {
		t.Errorf("expected date 2023-11-05, got %s", day0.Date)
	}
	if day0.Day.MaxtempC != 18.0 || day0.Day.MintempC != 10.0 {
		t.Errorf("unexpected day summary temps: max=%v min=%v", day0.Day.MaxtempC, day0.Day.MintempC)
	}
	if day0.Astro.Sunrise != "07:14 AM" {
		t.Errorf("expected sunrise 07:14 AM, got %s", day0.Astro.Sunrise)
	}
	if len(day0.Hour) != 2 {
		t.Fatalf("expected 2 hours, got %d", len(day0.Hour))
	}
	if day0.Hour[1].Condition.Code != 1000 {
		t.Errorf("expected hour 1 condition code 1000, got %d", day0.Hour[1].Condition.Code)
	}

	if len(fr.Forecast.Forecastday[1].Hour) != 0 {
		t.Errorf("expected day 1 to have no hours, got %d", len(fr.Forecast.Forecastday[1].Hour))
	}
}

// TestForecast_APIError tests error handling for non-200 responses
func TestForecast_APIError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	client := testClient(handler)
	if _, err := client.Forecast(context.Background(), "London"); err == nil {
		t.Fatal("expected error for API error, got nil")
	}
}

// TestForecast_InvalidJSON tests error handling for malformed bodies
func TestForecast_InvalidJSON(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json {"))
	})

	client := testClient(handler)
	if _, err := client.Forecast(context.Background(), "London"); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

// TestSearch_DecodesResults tests the search request and response decoding
func TestSearch_DecodesResults(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search.json" {
			t.Errorf("expected path /v1/search.json, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "Lon" {
			t.Errorf("expected q=Lon, got %s", r.URL.Query().Get("q"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "London", "region": "City of London, Greater London", "country": "United Kingdom"},
			{"name": "Londonderry", "region": "North Yorkshire", "country": "United Kingdom"}
		]`))
	})

	client := testClient(handler)
	locs, err := client.Search(context.Background(), "Lon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(locs) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locs))
	}
	if locs[0].Name != "London" || locs[0].Country != "United Kingdom" {
		t.Errorf("unexpected first result: %+v", locs[0])
	}
	if locs[1].Region != "North Yorkshire" {
		t.Errorf("unexpected second result region: %q", locs[1].Region)
	}
}

// TestSearch_APIError tests error propagation from the search endpoint
func TestSearch_APIError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := testClient(handler)
	if _, err := client.Search(context.Background(), "Lon"); err == nil {
		t.Fatal("expected error for API error, got nil")
	}
}
