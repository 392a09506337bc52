package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/martinezmaria/sqlalchemy-challenge/internal/modules/climate/types"
)

const dateLayout = "2006-01-02"

// parseDate accepts only calendar dates in YYYY-MM-DD form, the format the
// store compares lexically.
func parseDate(name, s string) (string, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid '%s' %q (expected YYYY-MM-DD)", name, s)
	}
	return t.Format(dateLayout), nil
}

// parseDateRange reads {start} and the optional {end} path values. start > end
// is allowed and simply matches nothing.
func parseDateRange(r *http.Request) (types.DateRange, error) {
	start, err := parseDate("start", r.PathValue("start"))
	if err != nil {
		return types.DateRange{}, err
	}
	dates := types.DateRange{Start: start}
	if s := r.PathValue("end"); s != "" {
		end, err := parseDate("end", s)
		if err != nil {
			return types.DateRange{}, err
		}
		dates.End = end
	}
	return dates, nil
}

// flattenStations renders stations as the legacy [id, name, id, name, ...] list.
func flattenStations(stations []types.Station) []any {
	out := make([]any, 0, 2*len(stations))
	for _, s := range stations {
		out = append(out, s.StationID, s.Name)
	}
	return out
}

// flattenTobs renders observations as the legacy [date, tobs, ...] list.
func flattenTobs(obs []types.TemperatureObservation) []any {
	out := make([]any, 0, 2*len(obs))
	for _, o := range obs {
		out = append(out, o.Date, o.Tobs)
	}
	return out
}
