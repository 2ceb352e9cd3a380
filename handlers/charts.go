package handlers

import (
	"net/http"

	"sabormap/views"
)

// ExperienceHandler serves the averaged food/service/value/atmosphere
// sub-scores per country. The country parameter is optional; without it the
// view spans every country.
func ExperienceHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := ex.ExperienceByCountry(r.URL.Query().Get("country"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// ViolinCuisinesHandler serves the per-cuisine rating distribution feeding
// the violin chart. The country parameter is optional.
func ViolinCuisinesHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dist, err := ex.CuisineDistribution(r.URL.Query().Get("country"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dist)
	}
}

// PriceVsRatingHandler serves the scatter samples relating price level to
// rating. The country parameter is optional.
func PriceVsRatingHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		points, err := ex.PriceVsRating(r.URL.Query().Get("country"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, points)
	}
}

// CountriesAvgHandler ranks countries by average rating with a derived
// average price level, over groups large enough to be meaningful.
func CountriesAvgHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := ex.CountryAverages()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// CountriesAvgRatingHandler ranks countries by average rating alone, rounded
// to two decimals.
func CountriesAvgRatingHandler(ex *views.Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := ex.CountryAverageRatings()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}
