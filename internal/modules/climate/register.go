package climate

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/martinezmaria/sqlalchemy-challenge/internal/modules/climate/controller"
	"github.com/martinezmaria/sqlalchemy-challenge/internal/modules/climate/repository"
	"github.com/martinezmaria/sqlalchemy-challenge/internal/modules/climate/views"
)

// Tables the climate routes read.
var Tables = []string{"measurement", "station"}

func RegisterFeature(mux *http.ServeMux, db *sql.DB, opts controller.Options) error {
	renderer, err := views.Load()
	if err != nil {
		return fmt.Errorf("load climate templates: %w", err)
	}
	climateRepository := repository.NewRepository(db)
	climateController := controller.NewClimateController(climateRepository, renderer, opts)
	climateController.RegisterRoutes(mux)
	return nil
}
