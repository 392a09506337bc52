package controller

import (
	"net/http"

	"github.com/martinezmaria/sqlalchemy-challenge/internal/modules/climate/repository"
	"github.com/martinezmaria/sqlalchemy-challenge/internal/modules/climate/views"
)

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Options fixes the "last year of data" window served by the precipitation
// and tobs routes.
type Options struct {
	CutoffDate  string
	TobsStation string
}

type climateControllerImpl struct {
	repository repository.ClimateRepository
	views      *views.Renderer
	opts       Options
}

func NewClimateController(repository repository.ClimateRepository, renderer *views.Renderer, opts Options) ClimateController {
	return &climateControllerImpl{repository: repository, views: renderer, opts: opts}
}

// RegisterRoutes registers the literal routes before the {start} wildcards.
// ServeMux already prefers the more specific literal pattern, the order keeps
// the table readable.
func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleIndex)

	mux.HandleFunc("GET /api/v1.0/precipitation", c.handlePrecipitation)
	mux.HandleFunc("GET /api/v1.0/stations", c.handleStationsFlat)
	mux.HandleFunc("GET /api/v1.0/tobs", c.handleTobsFlat)
	mux.HandleFunc("GET /api/v1.0/{start}", c.handleTemperatureStats)
	mux.HandleFunc("GET /api/v1.0/{start}/{end}", c.handleTemperatureStats)

	mux.HandleFunc("GET /api/v1.1/stations", c.handleStations)
	mux.HandleFunc("GET /api/v1.1/tobs", c.handleTobs)
}
