// Command climatedb manages the schema of a local climate store. The API
// server only ever opens the store read-only.
package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/martinezmaria/sqlalchemy-challenge/internal/db"
	"github.com/martinezmaria/sqlalchemy-challenge/internal/migrate"
)

const usage = `usage: %s migrate [up|down|version]
  up       apply pending schema migrations (default)
  down     roll back the most recent migration
  version  print the applied schema version
`

func main() {
	dbPath := strings.TrimSpace(os.Getenv("SQLITE_PATH"))
	if dbPath == "" {
		dbPath = "Resources/hawaii.sqlite"
	}
	dbPath = filepath.Clean(dbPath)

	if err := run(os.Args[1:], dbPath, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "climatedb: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, dbPath string, out io.Writer) error {
	if len(args) < 1 || args[0] != "migrate" {
		return fmt.Errorf("expected command migrate\n"+usage, "climatedb")
	}
	sub := "up"
	if len(args) > 1 {
		sub = args[1]
	}

	var action func(*sql.DB) error
	switch sub {
	case "up":
		action = func(conn *sql.DB) error {
			if err := migrate.Up(conn); err != nil {
				return err
			}
			fmt.Fprintln(out, "migrations applied")
			return nil
		}
	case "down":
		action = func(conn *sql.DB) error {
			if err := migrate.Down(conn); err != nil {
				return err
			}
			fmt.Fprintln(out, "rolled back one migration")
			return nil
		}
	case "version":
		action = func(conn *sql.DB) error {
			version, dirty, err := migrate.Version(conn)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "version %d dirty=%t\n", version, dirty)
			return nil
		}
	default:
		return fmt.Errorf("unknown migrate subcommand %q\n"+usage, sub, "climatedb")
	}

	conn, err := db.OpenWritable(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(conn); closeErr != nil {
			slog.Error("db close", "err", closeErr)
		}
	}()

	return action(conn)
}
