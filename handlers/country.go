package handlers

import (
	"net/http"

	"sabormap/views"
)

// RestaurantCountHandler serves the per-country restaurant count. The
// response echoes the resolved spelling variants the count was taken over.
func RestaurantCountHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country, ok := requireCountry(w, r)
		if !ok {
			return
		}

		result, err := ex.Count(country)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// CountryStatsHandler serves the total / vegan / gluten-free counts for one
// country. A country with no rows yields an empty object, not an error.
func CountryStatsHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country, ok := requireCountry(w, r)
		if !ok {
			return
		}

		stats, found, err := ex.CountryStats(country)
		if err != nil {
			writeError(w, err)
			return
		}
		if !found {
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// CountryPricesHandler serves the price-level bucket counts for one country.
func CountryPricesHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country, ok := requireCountry(w, r)
		if !ok {
			return
		}

		buckets, err := ex.PriceBuckets(country)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, buckets)
	}
}
