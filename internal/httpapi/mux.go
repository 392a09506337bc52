package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/martinezmaria/sqlalchemy-challenge/internal/utils"
)

// NewMux returns a mux with /healthz and a JSON 404 for unmatched paths.
// Feature routes are registered on it afterwards.
func NewMux(db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, db)
	mux.HandleFunc("/", utils.NotFound)
	return mux
}
