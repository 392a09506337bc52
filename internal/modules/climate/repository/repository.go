package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/martinezmaria/sqlalchemy-challenge/internal/modules/climate/types"
)

//go:embed sql/get-precipitation.sql
var getPrecipitationSQL string

//go:embed sql/get-stations.sql
var getStationsSQL string

//go:embed sql/get-temperature-observations.sql
var getTemperatureObservationsSQL string

//go:embed sql/get-temperature-stats-since.sql
var getTemperatureStatsSinceSQL string

//go:embed sql/get-temperature-stats-between.sql
var getTemperatureStatsBetweenSQL string

// ClimateRepository is the query layer over the measurement and station
// tables. Every method returns a non-nil slice; no rows is not an error.
type ClimateRepository interface {
	Precipitation(ctx context.Context, since string) ([]types.Precipitation, error)
	Stations(ctx context.Context) ([]types.Station, error)
	TemperatureObservations(ctx context.Context, stationID string, since string) ([]types.TemperatureObservation, error)
	TemperatureStats(ctx context.Context, dates types.DateRange) ([]types.TemperatureStats, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) ClimateRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Precipitation(ctx context.Context, since string) ([]types.Precipitation, error) {
	rows, err := r.db.QueryContext(ctx, getPrecipitationSQL, since)
	if err != nil {
		return nil, fmt.Errorf("query precipitation: %w", err)
	}
	defer closeRows(rows, "precipitation")

	out := []types.Precipitation{}
	for rows.Next() {
		var (
			p    types.Precipitation
			prcp sql.NullFloat64
		)
		if err := rows.Scan(&p.Date, &prcp); err != nil {
			return nil, fmt.Errorf("scan precipitation: %w", err)
		}
		p.Precipitation = floatPtr(prcp)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) Stations(ctx context.Context) ([]types.Station, error) {
	rows, err := r.db.QueryContext(ctx, getStationsSQL)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer closeRows(rows, "stations")

	out := []types.Station{}
	for rows.Next() {
		var (
			s                   types.Station
			lat, lon, elevation sql.NullFloat64
		)
		if err := rows.Scan(&s.StationID, &s.Name, &lat, &lon, &elevation); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		s.Latitude, s.Longitude, s.Elevation = floatPtr(lat), floatPtr(lon), floatPtr(elevation)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) TemperatureObservations(ctx context.Context, stationID string, since string) ([]types.TemperatureObservation, error) {
	rows, err := r.db.QueryContext(ctx, getTemperatureObservationsSQL, stationID, since)
	if err != nil {
		return nil, fmt.Errorf("query tobs for %s: %w", stationID, err)
	}
	defer closeRows(rows, "tobs")

	out := []types.TemperatureObservation{}
	for rows.Next() {
		var o types.TemperatureObservation
		if err := rows.Scan(&o.StationID, &o.Date, &o.Tobs); err != nil {
			return nil, fmt.Errorf("scan tobs: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) TemperatureStats(ctx context.Context, dates types.DateRange) ([]types.TemperatureStats, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if dates.End == "" {
		rows, err = r.db.QueryContext(ctx, getTemperatureStatsSinceSQL, dates.Start)
	} else {
		rows, err = r.db.QueryContext(ctx, getTemperatureStatsBetweenSQL, dates.Start, dates.End)
	}
	if err != nil {
		return nil, fmt.Errorf("query temperature stats: %w", err)
	}
	defer closeRows(rows, "temperature stats")

	out := []types.TemperatureStats{}
	for rows.Next() {
		var s types.TemperatureStats
		if err := rows.Scan(&s.Date, &s.TMin, &s.TMax, &s.TAvg); err != nil {
			return nil, fmt.Errorf("scan temperature stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func closeRows(rows *sql.Rows, what string) {
	if err := rows.Close(); err != nil {
		slog.Error("close rows", "query", what, "error", err)
	}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
