package repository

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/martinezmaria/sqlalchemy-challenge/internal/modules/climate/types"
	"github.com/martinezmaria/sqlalchemy-challenge/internal/testutil"
)

const cutoff = "2016-08-23"

var approx = cmpopts.EquateApprox(0, 1e-9)

func seededRepo(t *testing.T) ClimateRepository {
	t.Helper()
	_, conn := testutil.NewClimateDB(t)
	testutil.SeedHawaii(t, conn)
	return NewRepository(conn)
}

func TestEmptyStoreReturnsEmptySlices(t *testing.T) {
	_, conn := testutil.NewClimateDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	prcp, err := repo.Precipitation(ctx, cutoff)
	if err != nil {
		t.Fatalf("Precipitation: %v", err)
	}
	stations, err := repo.Stations(ctx)
	if err != nil {
		t.Fatalf("Stations: %v", err)
	}
	tobs, err := repo.TemperatureObservations(ctx, "USC00519281", cutoff)
	if err != nil {
		t.Fatalf("TemperatureObservations: %v", err)
	}
	stats, err := repo.TemperatureStats(ctx, types.DateRange{Start: cutoff})
	if err != nil {
		t.Fatalf("TemperatureStats: %v", err)
	}

	if prcp == nil || stations == nil || tobs == nil || stats == nil {
		t.Fatalf("want non-nil empty slices, got prcp=%v stations=%v tobs=%v stats=%v", prcp, stations, tobs, stats)
	}
	if len(prcp)+len(stations)+len(tobs)+len(stats) != 0 {
		t.Fatalf("want no rows, got %d/%d/%d/%d", len(prcp), len(stations), len(tobs), len(stats))
	}
}

func TestPrecipitation(t *testing.T) {
	repo := seededRepo(t)

	got, err := repo.Precipitation(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("Precipitation: %v", err)
	}

	want := []types.Precipitation{
		{Date: "2016-08-23", Precipitation: testutil.Ptr((1.79 + 0.00 + 0.15) / 3)},
		{Date: "2016-08-24", Precipitation: testutil.Ptr((2.15 + 9.99) / 2)},
		{Date: "2016-08-25", Precipitation: nil},
		{Date: "2017-08-18", Precipitation: testutil.Ptr(0.06)},
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Precipitation mismatch (-want +got):\n%s", diff)
	}
}

func TestPrecipitation_datesAreUniqueAndOnOrAfterCutoff(t *testing.T) {
	repo := seededRepo(t)

	got, err := repo.Precipitation(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("Precipitation: %v", err)
	}
	seen := map[string]bool{}
	for _, p := range got {
		if p.Date < cutoff {
			t.Errorf("date %s before cutoff %s", p.Date, cutoff)
		}
		if seen[p.Date] {
			t.Errorf("date %s returned twice", p.Date)
		}
		seen[p.Date] = true
	}
}

func TestStations(t *testing.T) {
	repo := seededRepo(t)

	got, err := repo.Stations(context.Background())
	if err != nil {
		t.Fatalf("Stations: %v", err)
	}

	want := []types.Station{
		{StationID: "USC00513117", Name: "KANEOHE 838.1, HI US"},
		{StationID: "USC00519281", Name: "WAIHEE 837.5, HI US"},
		{StationID: "USC00519397", Name: "WAIKIKI 717.2, HI US"},
	}
	ignoreCoords := cmpopts.IgnoreFields(types.Station{}, "Latitude", "Longitude", "Elevation")
	if diff := cmp.Diff(want, got, ignoreCoords); diff != "" {
		t.Errorf("Stations mismatch (-want +got):\n%s", diff)
	}
	if got[0].Latitude == nil || *got[0].Latitude != 21.3 {
		t.Errorf("Latitude = %v, want 21.3", got[0].Latitude)
	}
}

func TestStations_nullCoordinates(t *testing.T) {
	_, conn := testutil.NewClimateDB(t)
	if _, err := conn.Exec(`INSERT INTO station (station, name) VALUES ('S1', 'Bare')`); err != nil {
		t.Fatalf("insert station: %v", err)
	}

	got, err := NewRepository(conn).Stations(context.Background())
	if err != nil {
		t.Fatalf("Stations: %v", err)
	}
	if len(got) != 1 || got[0].Latitude != nil || got[0].Longitude != nil || got[0].Elevation != nil {
		t.Errorf("Stations = %+v, want one station with nil coordinates", got)
	}
}

func TestTemperatureObservations(t *testing.T) {
	repo := seededRepo(t)

	got, err := repo.TemperatureObservations(context.Background(), "USC00519281", cutoff)
	if err != nil {
		t.Fatalf("TemperatureObservations: %v", err)
	}

	want := []types.TemperatureObservation{
		{StationID: "USC00519281", Date: "2016-08-23", Tobs: 77},
		{StationID: "USC00519281", Date: "2016-08-24", Tobs: 77},
		{StationID: "USC00519281", Date: "2017-08-18", Tobs: 79},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TemperatureObservations mismatch (-want +got):\n%s", diff)
	}
}

func TestTemperatureObservations_unknownStation(t *testing.T) {
	repo := seededRepo(t)

	got, err := repo.TemperatureObservations(context.Background(), "NOPE", cutoff)
	if err != nil {
		t.Fatalf("TemperatureObservations: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d rows, want 0", len(got))
	}
}

func TestTemperatureStats(t *testing.T) {
	tests := []struct {
		name  string
		dates types.DateRange
		want  []types.TemperatureStats
	}{
		{
			name:  "open ended",
			dates: types.DateRange{Start: "2016-08-24"},
			want: []types.TemperatureStats{
				{Date: "2016-08-24", TMin: 77, TMax: 79, TAvg: 78},
				{Date: "2016-08-25", TMin: 80, TMax: 80, TAvg: 80},
				{Date: "2017-08-18", TMin: 79, TMax: 79, TAvg: 79},
			},
		},
		{
			name:  "inclusive range",
			dates: types.DateRange{Start: "2016-08-23", End: "2016-08-24"},
			want: []types.TemperatureStats{
				{Date: "2016-08-23", TMin: 76, TMax: 81, TAvg: 78},
				{Date: "2016-08-24", TMin: 77, TMax: 79, TAvg: 78},
			},
		},
		{
			name:  "single day",
			dates: types.DateRange{Start: "2016-08-22", End: "2016-08-22"},
			want: []types.TemperatureStats{
				{Date: "2016-08-22", TMin: 77, TMax: 80, TAvg: 78.5},
			},
		},
		{
			name:  "start after end",
			dates: types.DateRange{Start: "2017-01-01", End: "2016-01-01"},
			want:  []types.TemperatureStats{},
		},
		{
			name:  "after last measurement",
			dates: types.DateRange{Start: "2018-01-01"},
			want:  []types.TemperatureStats{},
		},
	}

	repo := seededRepo(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.TemperatureStats(context.Background(), tt.dates)
			if err != nil {
				t.Fatalf("TemperatureStats: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("TemperatureStats mismatch (-want +got):\n%s", diff)
			}
			for _, s := range got {
				if s.TMin > s.TAvg || s.TAvg > s.TMax {
					t.Errorf("%s: want tmin <= tavg <= tmax, got %v/%v/%v", s.Date, s.TMin, s.TAvg, s.TMax)
				}
				if s.Date < tt.dates.Start || (tt.dates.End != "" && s.Date > tt.dates.End) {
					t.Errorf("%s outside [%s, %s]", s.Date, tt.dates.Start, tt.dates.End)
				}
			}
		})
	}
}

func TestTemperatureStats_singleStationSingleDay(t *testing.T) {
	_, conn := testutil.NewClimateDB(t)
	testutil.InsertStation(t, conn, "S1", "Station One")
	testutil.InsertMeasurement(t, conn, "S1", "2017-01-01", nil, 60)
	testutil.InsertMeasurement(t, conn, "S1", "2017-01-02", nil, 70)

	got, err := NewRepository(conn).TemperatureStats(context.Background(),
		types.DateRange{Start: "2017-01-01", End: "2017-01-01"})
	if err != nil {
		t.Fatalf("TemperatureStats: %v", err)
	}

	want := []types.TemperatureStats{{Date: "2017-01-01", TMin: 60, TMax: 60, TAvg: 60}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TemperatureStats mismatch (-want +got):\n%s", diff)
	}
}

func TestQueriesHonorCancelledContext(t *testing.T) {
	repo := seededRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.Precipitation(ctx, cutoff); err == nil {
		t.Error("Precipitation with cancelled context: error = nil")
	}
	if _, err := repo.Stations(ctx); err == nil {
		t.Error("Stations with cancelled context: error = nil")
	}
	if _, err := repo.TemperatureObservations(ctx, "USC00519281", cutoff); err == nil {
		t.Error("TemperatureObservations with cancelled context: error = nil")
	}
	if _, err := repo.TemperatureStats(ctx, types.DateRange{Start: cutoff}); err == nil {
		t.Error("TemperatureStats with cancelled context: error = nil")
	}
}

func TestQueriesFailOnClosedStore(t *testing.T) {
	_, conn := testutil.NewClimateDB(t)
	repo := NewRepository(conn)
	if err := conn.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := repo.Stations(context.Background()); err == nil {
		t.Error("Stations on closed store: error = nil")
	}
}
