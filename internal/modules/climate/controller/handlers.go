package controller

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/martinezmaria/sqlalchemy-challenge/internal/modules/climate/views"
	"github.com/martinezmaria/sqlalchemy-challenge/internal/utils"
)

func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := views.IndexData{
		CutoffDate:  c.opts.CutoffDate,
		TobsStation: c.opts.TobsStation,
		Routes:      views.DefaultRoutes(),
	}
	var buf bytes.Buffer
	if err := c.views.RenderIndex(&buf, data); err != nil {
		slog.Error("index template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("index: write response failed", "error", err)
	}
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	prcp, err := c.repository.Precipitation(r.Context(), c.opts.CutoffDate)
	if err != nil {
		slog.Error("precipitation query failed", "since", c.opts.CutoffDate, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load precipitation")
		return
	}
	utils.WriteJSON(w, http.StatusOK, prcp)
}

func (c *climateControllerImpl) handleStationsFlat(w http.ResponseWriter, r *http.Request) {
	stations, err := c.repository.Stations(r.Context())
	if err != nil {
		slog.Error("stations query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load stations")
		return
	}
	utils.WriteJSON(w, http.StatusOK, flattenStations(stations))
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	stations, err := c.repository.Stations(r.Context())
	if err != nil {
		slog.Error("stations query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load stations")
		return
	}
	utils.WriteJSON(w, http.StatusOK, stations)
}

func (c *climateControllerImpl) handleTobsFlat(w http.ResponseWriter, r *http.Request) {
	obs, err := c.repository.TemperatureObservations(r.Context(), c.opts.TobsStation, c.opts.CutoffDate)
	if err != nil {
		slog.Error("tobs query failed", "station", c.opts.TobsStation, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load temperature observations")
		return
	}
	utils.WriteJSON(w, http.StatusOK, flattenTobs(obs))
}

func (c *climateControllerImpl) handleTobs(w http.ResponseWriter, r *http.Request) {
	obs, err := c.repository.TemperatureObservations(r.Context(), c.opts.TobsStation, c.opts.CutoffDate)
	if err != nil {
		slog.Error("tobs query failed", "station", c.opts.TobsStation, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load temperature observations")
		return
	}
	utils.WriteJSON(w, http.StatusOK, obs)
}

// handleTemperatureStats serves both /{start} and /{start}/{end}.
func (c *climateControllerImpl) handleTemperatureStats(w http.ResponseWriter, r *http.Request) {
	dates, err := parseDateRange(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := c.repository.TemperatureStats(r.Context(), dates)
	if err != nil {
		slog.Error("temperature stats query failed", "start", dates.Start, "end", dates.End, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load temperature stats")
		return
	}
	utils.WriteJSON(w, http.StatusOK, stats)
}
