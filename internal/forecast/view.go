package forecast

import "github.com/skycastapp/skycast/internal/weatherapi"

// View selects which slice of the forecast bundle is displayed.
type View string

const (
	ViewToday    View = "today"
	ViewTomorrow View = "tomorrow"
	ViewWeekly   View = "weekly"
)

// ParseView normalizes a view name, defaulting to today.
func ParseView(s string) View {
	switch View(s) {
	case ViewTomorrow:
		return ViewTomorrow
	case ViewWeekly:
		return ViewWeekly
	default:
		return ViewToday
	}
}

// ItemKind discriminates the two display item shapes.
type ItemKind int

const (
	KindHour ItemKind = iota
	KindDay
)

// Item is one display entry: an hour slot for the hourly views or a whole
// day for the weekly view. Kind tells rendering which pointer is set.
type Item struct {
	Kind ItemKind
	Hour *weatherapi.Hour
	Day  *weatherapi.ForecastDay
}

// Select derives the ordered display items for a view. The today view is a
// rolling 24-hour window: the rest of today's hours followed by tomorrow's
// hours up to the current hour, capped at 24 entries. Missing or short days
// shrink the output; Select never fabricates entries and never panics on
// partial data.
func Select(bundle *weatherapi.Forecast, view View, nowHour int) []Item {
	if bundle == nil {
		return []Item{}
	}
	days := bundle.Forecastday

	switch view {
	case ViewTomorrow:
		if len(days) < 2 {
			return []Item{}
		}
		return hourItems(days[1].Hour)
	case ViewWeekly:
		n := len(days)
		if n > 7 {
			n = 7
		}
		items := make([]Item, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, Item{Kind: KindDay, Day: &days[i]})
		}
		return items
	}

	if len(days) == 0 {
		return []Item{}
	}
	if nowHour < 0 {
		nowHour = 0
	}

	today := days[0].Hour
	start := nowHour
	if start > len(today) {
		start = len(today)
	}
	window := append([]weatherapi.Hour{}, today[start:]...)

	if len(days) > 1 {
		end := nowHour
		if end > len(days[1].Hour) {
			end = len(days[1].Hour)
		}
		window = append(window, days[1].Hour[:end]...)
	}

	if len(window) > 24 {
		window = window[:24]
	}
	return hourItems(window)
}

func hourItems(hours []weatherapi.Hour) []Item {
	items := make([]Item, 0, len(hours))
	for i := range hours {
		items = append(items, Item{Kind: KindHour, Hour: &hours[i]})
	}
	return items
}
