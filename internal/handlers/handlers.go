package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/skycastapp/skycast/internal/dashboard"
	"github.com/skycastapp/skycast/internal/forecast"
	"github.com/skycastapp/skycast/internal/response"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	coordinator *dashboard.Coordinator
	templates   *template.Template
	clock       forecast.Clock
}

// New creates a new Handlers instance. A template parse failure is logged
// and rendering degrades to JSON so the API surface keeps working.
func New(coordinator *dashboard.Coordinator) *Handlers {
	tmpl, err := template.ParseGlob("templates/*.html")
	if err != nil {
		slog.Warn("failed to parse templates", "error", err)
		tmpl = nil
	}

	return &Handlers{
		coordinator: coordinator,
		templates:   tmpl,
		clock:       time.Now,
	}
}

// HourView is one rendered hourly slot. The first slot of the today view is
// labeled "Now".
type HourView struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Temp  string `json:"temp"`
}

// DayView is one rendered weekly row.
type DayView struct {
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	Condition string `json:"condition"`
	Humidity  string `json:"humidity"`
	MaxWind   string `json:"max_wind"`
	MaxTemp   string `json:"max_temp"`
	MinTemp   string `json:"min_temp"`
}

// WeatherView is the rendered dashboard state handed to templates and JSON
// clients. All rounding happens here, at display time; the stored payload
// keeps the provider's exact values.
type WeatherView struct {
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	Location    string     `json:"location,omitempty"`
	Temperature string     `json:"temperature,omitempty"`
	FeelsLike   string     `json:"feels_like,omitempty"`
	Condition   string     `json:"condition,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Unit        string     `json:"unit"`
	UnitSymbol  string     `json:"unit_symbol"`
	View        string     `json:"view"`
	TimeOfDay   string     `json:"time_of_day"`
	Visibility  string     `json:"visibility,omitempty"`
	Humidity    string     `json:"humidity,omitempty"`
	WindSpeed   string     `json:"wind_speed,omitempty"`
	WindFrom    string     `json:"wind_from,omitempty"`
	Pressure    string     `json:"pressure,omitempty"`
	UVIndex     string     `json:"uv_index,omitempty"`
	Sunrise     string     `json:"sunrise,omitempty"`
	Sunset      string     `json:"sunset,omitempty"`
	Hours       []HourView `json:"hours"`
	Days        []DayView  `json:"days"`
}

func (h *Handlers) buildView(snap dashboard.Snapshot) WeatherView {
	now := h.clock()
	view := WeatherView{
		Status:     string(snap.Status),
		Error:      snap.LastErr,
		Unit:       string(snap.Unit),
		UnitSymbol: unitSymbol(snap.Unit),
		View:       string(snap.View),
		TimeOfDay:  forecast.TimeOfDay(now),
		Hours:      []HourView{},
		Days:       []DayView{},
	}

	wd := snap.Weather
	if wd == nil {
		return view
	}

	isDay := forecast.IsDaytime(now)
	cur := wd.Current

	view.Location = wd.Location.Name + ", " + wd.Location.Country
	view.Temperature = formatTemp(cur.TempC, cur.TempF, snap.Unit)
	view.FeelsLike = formatTemp(cur.FeelslikeC, cur.FeelslikeF, snap.Unit)
	view.Condition = cur.Condition.Text
	view.Icon = forecast.Classify(cur.Condition.Code, isDay)
	view.Visibility = trimFloat(cur.VisKm) + "km"
	view.Humidity = strconv.Itoa(cur.Humidity) + "%"
	view.WindSpeed = roundInt(cur.WindKph) + "km/h"
	view.WindFrom = forecast.Direction(trimFloat(cur.WindDegree))
	view.Pressure = roundInt(cur.PressureMb) + "hPa"
	view.UVIndex = trimFloat(cur.UV)

	view.Sunrise = "7:00 AM"
	view.Sunset = "6:00 PM"
	if len(wd.Forecast.Forecastday) > 0 {
		astro := wd.Forecast.Forecastday[0].Astro
		if astro.Sunrise != "" {
			view.Sunrise = astro.Sunrise
		}
		if astro.Sunset != "" {
			view.Sunset = astro.Sunset
		}
	}

	items := forecast.Select(&wd.Forecast, snap.View, now.Hour())
	for i, item := range items {
		switch item.Kind {
		case forecast.KindHour:
			hour := item.Hour
			label := forecast.HourLabel(hour.Time)
			if snap.View == forecast.ViewToday && i == 0 {
				label = "Now"
			}
			view.Hours = append(view.Hours, HourView{
				Label: label,
				Icon:  forecast.Classify(hour.Condition.Code, isDay),
				Temp:  formatTemp(hour.TempC, hour.TempF, snap.Unit) + unitSymbol(snap.Unit),
			})
		case forecast.KindDay:
			day := item.Day
			view.Days = append(view.Days, DayView{
				Label:     forecast.DayLabel(day.Date, now),
				Icon:      forecast.Classify(day.Day.Condition.Code, isDay),
				Condition: day.Day.Condition.Text,
				Humidity:  roundInt(day.Day.Avghumidity) + "%",
				MaxWind:   roundInt(day.Day.MaxwindKph) + "km/h",
				MaxTemp:   formatTemp(day.Day.MaxtempC, day.Day.MaxtempF, snap.Unit) + unitSymbol(snap.Unit),
				MinTemp:   formatTemp(day.Day.MintempC, day.Day.MintempF, snap.Unit) + unitSymbol(snap.Unit),
			})
		}
	}

	return view
}

func unitSymbol(u dashboard.Unit) string {
	if u == dashboard.UnitFahrenheit {
		return "°F"
	}
	return "°C"
}

func formatTemp(c, f float64, u dashboard.Unit) string {
	if u == dashboard.UnitFahrenheit {
		return roundInt(f)
	}
	return roundInt(c)
}

func roundInt(v float64) string {
	return strconv.Itoa(int(math.Round(v)))
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// renderWeather writes the weather fragment, or the view model as JSON when
// the client asks for JSON or no templates are loaded.
func (h *Handlers) renderWeather(w http.ResponseWriter, r *http.Request, status int, view WeatherView) {
	wantsJSON := strings.Contains(r.Header.Get("Accept"), "application/json")
	if h.templates == nil || wantsJSON {
		response.JSON(w, status, view)
		return
	}

	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, "weather_fragment", view); err != nil {
		slog.Error("template error", "error", err)
	}
}

// HandleIndex handles the main page.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	view := h.buildView(h.coordinator.Snapshot())

	if h.templates == nil {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
	<title>skycast</title>
</head>
<body>
	<h1>skycast</h1>
	<p>Weather dashboard - templates not loaded</p>
</body>
</html>`))
		return
	}

	if err := h.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		slog.Error("template error", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleHealth handles the health check endpoint.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleWeather loads weather for the requested location and renders the
// dashboard fragment. Fetch failures surface only the fixed message; the
// cause stays in the logs.
func (h *Handlers) HandleWeather(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		response.ErrorJSON(w, http.StatusBadRequest, "please provide a location")
		return
	}

	status := http.StatusOK
	if err := h.coordinator.LoadLocation(r.Context(), location); err != nil {
		status = http.StatusBadGateway
	}
	h.renderWeather(w, r, status, h.buildView(h.coordinator.Snapshot()))
}

// HandleRefresh re-fetches weather for the currently held location.
func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	if err := h.coordinator.Refresh(r.Context()); err != nil {
		snap := h.coordinator.Snapshot()
		if snap.Query == "" {
			response.ErrorJSON(w, http.StatusBadRequest, "no location loaded")
			return
		}
		status = http.StatusBadGateway
	}
	h.renderWeather(w, r, status, h.buildView(h.coordinator.Snapshot()))
}

// HandleUnit toggles the temperature unit. No upstream fetch happens; the
// re-render reads the other pre-computed field.
func (h *Handlers) HandleUnit(w http.ResponseWriter, r *http.Request) {
	h.coordinator.ToggleUnit()
	h.renderWeather(w, r, http.StatusOK, h.buildView(h.coordinator.Snapshot()))
}

// HandleView switches the active forecast view. No upstream fetch.
func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	h.coordinator.SetView(forecast.ParseView(r.FormValue("view")))
	h.renderWeather(w, r, http.StatusOK, h.buildView(h.coordinator.Snapshot()))
}

// HandleSearch performs location autocomplete. Short queries and upstream
// failures both answer with an empty array.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	locations := h.coordinator.Search(r.Context(), q)

	data, err := json.Marshal(locations)
	if err != nil {
		slog.Error("JSON encode error", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		slog.Error("response write error", "error", err)
	}
}
