package weatherapi

// Condition describes a weather phenomenon. Code is the stable identifier
// used for icon selection; Text and Icon are provider display hints only.
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

// Location identifies a place as reported by the provider.
type Location struct {
	Name    string `json:"name"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country"`
}

// Current is the snapshot of present conditions. Temperatures arrive
// pre-computed in both units; unit preference picks a field, it never
// converts.
type Current struct {
	TempC      float64   `json:"temp_c"`
	TempF      float64   `json:"temp_f"`
	FeelslikeC float64   `json:"feelslike_c"`
	FeelslikeF float64   `json:"feelslike_f"`
	Condition  Condition `json:"condition"`
	WindKph    float64   `json:"wind_kph"`
	WindDegree float64   `json:"wind_degree"`
	WindDir    string    `json:"wind_dir"`
	PressureMb float64   `json:"pressure_mb"`
	Humidity   int       `json:"humidity"`
	VisKm      float64   `json:"vis_km"`
	UV         float64   `json:"uv"`
}

// Day is the per-day forecast summary.
type Day struct {
	MaxtempC          float64   `json:"maxtemp_c"`
	MaxtempF          float64   `json:"maxtemp_f"`
	MintempC          float64   `json:"mintemp_c"`
	MintempF          float64   `json:"mintemp_f"`
	AvgtempC          float64   `json:"avgtemp_c"`
	AvgtempF          float64   `json:"avgtemp_f"`
	Condition         Condition `json:"condition"`
	MaxwindKph        float64   `json:"maxwind_kph"`
	TotalprecipMm     float64   `json:"totalprecip_mm"`
	AvgvisKm          float64   `json:"avgvis_km"`
	Avghumidity       float64   `json:"avghumidity"`
	DailyWillItRain   int       `json:"daily_will_it_rain"`
	DailyChanceOfRain int       `json:"daily_chance_of_rain"`
	DailyWillItSnow   int       `json:"daily_will_it_snow"`
	DailyChanceOfSnow int       `json:"daily_chance_of_snow"`
	UV                float64   `json:"uv"`
}

// Astro holds the astronomical data for one forecast day.
type Astro struct {
	Sunrise          string `json:"sunrise"`
	Sunset           string `json:"sunset"`
	Moonrise         string `json:"moonrise"`
	Moonset          string `json:"moonset"`
	MoonPhase        string `json:"moon_phase"`
	MoonIllumination string `json:"moon_illumination"`
}

// Hour is a single hourly forecast entry.
type Hour struct {
	TimeEpoch    int64     `json:"time_epoch"`
	Time         string    `json:"time"`
	TempC        float64   `json:"temp_c"`
	TempF        float64   `json:"temp_f"`
	Condition    Condition `json:"condition"`
	WindKph      float64   `json:"wind_kph"`
	WindDir      string    `json:"wind_dir"`
	PressureMb   float64   `json:"pressure_mb"`
	PrecipMm     float64   `json:"precip_mm"`
	Humidity     int       `json:"humidity"`
	Cloud        int       `json:"cloud"`
	FeelslikeC   float64   `json:"feelslike_c"`
	FeelslikeF   float64   `json:"feelslike_f"`
	WindchillC   float64   `json:"windchill_c"`
	WindchillF   float64   `json:"windchill_f"`
	HeatindexC   float64   `json:"heatindex_c"`
	HeatindexF   float64   `json:"heatindex_f"`
	DewpointC    float64   `json:"dewpoint_c"`
	DewpointF    float64   `json:"dewpoint_f"`
	WillItRain   int       `json:"will_it_rain"`
	ChanceOfRain int       `json:"chance_of_rain"`
	WillItSnow   int       `json:"will_it_snow"`
	ChanceOfSnow int       `json:"chance_of_snow"`
	VisKm        float64   `json:"vis_km"`
	GustKph      float64   `json:"gust_kph"`
	UV           float64   `json:"uv"`
}

// ForecastDay is one calendar day of the bundle: summary, astro and 0-24
// hourly entries.
type ForecastDay struct {
	Date      string `json:"date"`
	DateEpoch int64  `json:"date_epoch"`
	Day       Day    `json:"day"`
	Astro     Astro  `json:"astro"`
	Hour      []Hour `json:"hour"`
}

// Forecast is the multi-day bundle. Forecastday[0] is today in the
// location's local time; order is chronological and never reordered here.
type Forecast struct {
	Forecastday []ForecastDay `json:"forecastday"`
}

// ForecastResponse is the full forecast.json payload. Location, current
// conditions and forecast are created together by one fetch and replaced
// together; there is no partial update.
type ForecastResponse struct {
	Location Location `json:"location"`
	Current  Current  `json:"current"`
	Forecast Forecast `json:"forecast"`
}
