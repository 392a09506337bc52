package httpapi

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"
)

// AttachDebugRoutes mounts the tsweb debug index at /debug/ and a read-only
// tailsql console over db at /debug/tailsql/.
func AttachDebugRoutes(mux *http.ServeMux, db *sql.DB, source string) error {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://"+source, db, &tailsql.DBOptions{
		Label: "Climate DB",
	})
	debug.Handle("tailsql/", "SQL console over the climate store", tsql.NewMux())
	return nil
}
