package types

// Dates are ISO-8601 calendar dates (YYYY-MM-DD), kept as text exactly as the
// store holds them.

type Station struct {
	StationID string   `json:"station_id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Elevation *float64 `json:"elevation"`
}

// Precipitation is the per-date precipitation, averaged over the stations
// that reported a value. Nil when every report for the date was null.
type Precipitation struct {
	Date          string   `json:"date"`
	Precipitation *float64 `json:"precipitation"`
}

type TemperatureObservation struct {
	StationID string  `json:"station_id"`
	Date      string  `json:"date"`
	Tobs      float64 `json:"tobs"`
}

type TemperatureStats struct {
	Date string  `json:"date"`
	TMin float64 `json:"tmin"`
	TMax float64 `json:"tmax"`
	TAvg float64 `json:"tavg"`
}

// DateRange is inclusive on both ends. An empty End leaves it open.
type DateRange struct {
	Start string
	End   string
}
