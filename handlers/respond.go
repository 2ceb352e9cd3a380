package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"sabormap/views"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("encoding response failed")
	}
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// writeError maps the core error taxonomy onto HTTP statuses: malformed
// input 400, unusable view configuration 422, store failure 500. Store
// details carry only what the driver reported.
func writeError(w http.ResponseWriter, err error) {
	var validation *views.ValidationError
	var config *views.ViewConfigurationError
	var store *views.StoreFailure

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: validation.Error()})
	case errors.As(err, &config):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:  "country not usable for this view",
			Detail: config.Error(),
		})
	case errors.As(err, &store):
		log.WithError(store.Err).WithField("op", store.Op).Error("store query failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:  "query failed",
			Detail: store.Err.Error(),
		})
	default:
		log.WithError(err).Error("unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// requireCountry reads the mandatory country parameter, answering 400 when
// it is missing.
func requireCountry(w http.ResponseWriter, r *http.Request) (string, bool) {
	country := r.URL.Query().Get("country")
	if country == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "country is required"})
		return "", false
	}
	return country, true
}
