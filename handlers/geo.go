package handlers

import (
	"net/http"

	"sabormap/views"
)

// RestaurantsHandler serves the map markers for one country: every row with
// coordinates that parse as finite decimals.
func RestaurantsHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country, ok := requireCountry(w, r)
		if !ok {
			return
		}

		points, err := ex.GeoPoints(country, false)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, points)
	}
}

// PricesHandler serves the price overlay: map markers restricted to rows
// carrying one of the recognized price tokens.
func PricesHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country, ok := requireCountry(w, r)
		if !ok {
			return
		}

		points, err := ex.GeoPoints(country, true)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, points)
	}
}

// TopRestaurantsHandler serves the three most-reviewed restaurants with
// usable coordinates for one country.
func TopRestaurantsHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country, ok := requireCountry(w, r)
		if !ok {
			return
		}

		top, err := ex.TopRestaurants(country)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, top)
	}
}

// TopCafesHandler serves the three best-rated cafe-like restaurants for one
// country.
func TopCafesHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country, ok := requireCountry(w, r)
		if !ok {
			return
		}

		top, err := ex.TopCafes(country)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, top)
	}
}
