package forecast

import "time"

// Clock supplies the current time. Production code passes time.Now; tests
// pin a fixed instant so labels are deterministic.
type Clock func() time.Time

// Layouts used by the provider payload.
const (
	hourLayout = "2006-01-02 15:04"
	dateLayout = "2006-01-02"
)

// Time-of-day buckets derived from the local hour.
const (
	Night     = "night"
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
)

// HourLabel renders an hourly timestamp as a zero-padded 24-hour HH:MM
// label, falling back to the raw value when it does not parse.
func HourLabel(ts string) string {
	t, err := time.ParseInLocation(hourLayout, ts, time.Local)
	if err != nil {
		return ts
	}
	return t.Format("15:04")
}

// DayLabel renders a forecast date relative to now: "Today", "Tomorrow" or
// a short form like "Sun, Dec 3". Comparison is by calendar date only.
func DayLabel(date string, now time.Time) string {
	d, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return date
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case d.Equal(today):
		return "Today"
	case d.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	}
	return d.Format("Mon, Jan 2")
}

// TimeOfDay buckets the current local hour.
func TimeOfDay(now time.Time) string {
	switch h := now.Hour(); {
	case h < 6:
		return Night
	case h < 12:
		return Morning
	case h < 18:
		return Afternoon
	default:
		return Evening
	}
}

// IsDaytime reports whether the local hour falls in [6, 18).
func IsDaytime(now time.Time) bool {
	h := now.Hour()
	return h >= 6 && h < 18
}
