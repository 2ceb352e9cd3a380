package handlers

import (
	"net/http"

	"sabormap/views"
)

// HealthHandler answers the root probe.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("restaurant data API running"))
	}
}

// CountriesHandler lists every distinct country spelling present in the
// store, for populating the country selector.
func CountriesHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := ex.Countries()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// TopCountriesHandler serves the five countries with the most restaurants.
func TopCountriesHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := ex.Leaderboard()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, board)
	}
}

// TopCountriesStatsHandler serves grouped stats for the three countries with
// the most restaurants.
func TopCountriesStatsHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := ex.TopCountryStats()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
