// Package testutil builds throwaway climate stores for tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/martinezmaria/sqlalchemy-challenge/internal/db"
	"github.com/martinezmaria/sqlalchemy-challenge/internal/migrate"
)

// NewClimateDB creates a migrated, empty store in a temp dir and returns its
// path and a writable handle closed at test cleanup.
func NewClimateDB(t testing.TB) (string, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	conn, err := db.OpenWritable(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := conn.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})
	if err := migrate.Up(conn); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return path, conn
}

// Ptr returns a pointer to v, for nullable columns.
func Ptr(v float64) *float64 { return &v }

func InsertStation(t testing.TB, conn *sql.DB, stationID, name string) {
	t.Helper()
	_, err := conn.Exec(
		`INSERT INTO station (station, name, latitude, longitude, elevation) VALUES (?, ?, 21.3, -157.8, 3.0)`,
		stationID, name,
	)
	if err != nil {
		t.Fatalf("insert station %s: %v", stationID, err)
	}
}

func InsertMeasurement(t testing.TB, conn *sql.DB, stationID, date string, prcp *float64, tobs float64) {
	t.Helper()
	var p any
	if prcp != nil {
		p = *prcp
	}
	_, err := conn.Exec(
		`INSERT INTO measurement (station, date, prcp, tobs) VALUES (?, ?, ?, ?)`,
		stationID, date, p, tobs,
	)
	if err != nil {
		t.Fatalf("insert measurement %s %s: %v", stationID, date, err)
	}
}

// SeedHawaii loads a small slice of the hawaii dataset: three stations, one
// of them the default tobs station, straddling the 2016-08-23 cutoff.
func SeedHawaii(t testing.TB, conn *sql.DB) {
	t.Helper()
	InsertStation(t, conn, "USC00519281", "WAIHEE 837.5, HI US")
	InsertStation(t, conn, "USC00519397", "WAIKIKI 717.2, HI US")
	InsertStation(t, conn, "USC00513117", "KANEOHE 838.1, HI US")

	InsertMeasurement(t, conn, "USC00519281", "2016-08-22", Ptr(1.79), 77)
	InsertMeasurement(t, conn, "USC00519397", "2016-08-22", Ptr(0.40), 80)
	InsertMeasurement(t, conn, "USC00519281", "2016-08-23", Ptr(1.79), 77)
	InsertMeasurement(t, conn, "USC00519397", "2016-08-23", Ptr(0.00), 81)
	InsertMeasurement(t, conn, "USC00513117", "2016-08-23", Ptr(0.15), 76)
	InsertMeasurement(t, conn, "USC00519281", "2016-08-24", Ptr(2.15), 77)
	InsertMeasurement(t, conn, "USC00519397", "2016-08-24", nil, 79)
	InsertMeasurement(t, conn, "USC00513117", "2016-08-25", nil, 80)
	InsertMeasurement(t, conn, "USC00519281", "2017-08-18", Ptr(0.06), 79)
	// Orphan station, excluded by the stats join.
	InsertMeasurement(t, conn, "USC00599999", "2016-08-24", Ptr(9.99), 60)
}
