package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sabormap/countries"
	"sabormap/views"
)

const testSchema = `
CREATE TABLE restaurants (
	restaurant_name     TEXT,
	city                TEXT,
	country             TEXT,
	latitude            TEXT,
	longitude           TEXT,
	price_level         TEXT,
	avg_rating          REAL,
	total_reviews_count INTEGER,
	cuisines            TEXT,
	top_tags            TEXT,
	food                TEXT,
	service             TEXT,
	value               TEXT,
	atmosphere          TEXT,
	vegan_options       TEXT,
	gluten_free         TEXT
)`

func newTestExplorer(t *testing.T) *views.Explorer {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	return views.NewExplorer(db, countries.Default())
}

func seedCountry(t *testing.T, ex *views.Explorer, country, price string) {
	t.Helper()
	_, err := ex.DB.Exec(
		"INSERT INTO restaurants (restaurant_name, country, price_level) VALUES (?, ?, ?)",
		"r", country, sql.NullString{String: price, Valid: price != ""})
	require.NoError(t, err)
}

func get(t *testing.T, h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestRestaurantCountHandler_ResolvesVariants(t *testing.T) {
	ex := newTestExplorer(t)
	seedCountry(t, ex, "England", "")
	seedCountry(t, ex, "England", "")
	seedCountry(t, ex, "Scotland", "")
	seedCountry(t, ex, "France", "")

	rr := get(t, RestaurantCountHandler(ex), "/api/restaurant-count?country=United+Kingdom")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	goldie.New(t).AssertJson(t, "restaurant_count", decodeBody(t, rr))
}

func TestRestaurantCountHandler_MissingCountry(t *testing.T) {
	ex := newTestExplorer(t)

	rr := get(t, RestaurantCountHandler(ex), "/api/restaurant-count")

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"country is required"}`, rr.Body.String())
}

func TestRestaurantCountHandler_StoreFailure(t *testing.T) {
	ex := newTestExplorer(t)
	require.NoError(t, ex.DB.Close())

	rr := get(t, RestaurantCountHandler(ex), "/api/restaurant-count?country=Spain")

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "query failed", body.Error)
	assert.NotEmpty(t, body.Detail)
}

func TestCountryPricesHandler_Buckets(t *testing.T) {
	ex := newTestExplorer(t)
	seedCountry(t, ex, "Spain", "€")
	seedCountry(t, ex, "Spain", "€€-€€€")
	seedCountry(t, ex, "Spain", "")

	rr := get(t, CountryPricesHandler(ex), "/api/country-prices?country=Spain")

	require.Equal(t, http.StatusOK, rr.Code)
	goldie.New(t).AssertJson(t, "country_prices", decodeBody(t, rr))
}

func TestCountryStatsHandler_EmptyObjectWhenNoRows(t *testing.T) {
	ex := newTestExplorer(t)

	rr := get(t, CountryStatsHandler(ex), "/api/country-stats?country=Japan")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{}`, rr.Body.String())
}

func TestRestaurantsHandler_MultiVariantCountryRejected(t *testing.T) {
	ex := newTestExplorer(t)
	seedCountry(t, ex, "England", "")

	rr := get(t, RestaurantsHandler(ex), "/api/restaurants?country=United+Kingdom")

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "country not usable for this view", body.Error)
	assert.Contains(t, body.Detail, "United Kingdom")
}

func TestPricesHandler_SingleParseablePoint(t *testing.T) {
	ex := newTestExplorer(t)
	_, err := ex.DB.Exec(
		"INSERT INTO restaurants (restaurant_name, country, latitude, longitude, price_level) VALUES (?, ?, ?, ?, ?)",
		"Good", "Spain", "40.4", "-3.7", "€")
	require.NoError(t, err)
	_, err = ex.DB.Exec(
		"INSERT INTO restaurants (restaurant_name, country, latitude, longitude, price_level) VALUES (?, ?, NULL, ?, ?)",
		"NoLat", "Spain", "-3.7", "€")
	require.NoError(t, err)

	rr := get(t, PricesHandler(ex), "/api/prices?country=Spain")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"name":"Good","lat":40.4,"lng":-3.7,"price_level":"€"}]`, rr.Body.String())
}

func TestTopCountriesHandler(t *testing.T) {
	ex := newTestExplorer(t)
	seedCountry(t, ex, "Italy", "")
	seedCountry(t, ex, "Italy", "")
	seedCountry(t, ex, "Spain", "")

	rr := get(t, TopCountriesHandler(ex), "/api/top-countries")

	require.Equal(t, http.StatusOK, rr.Code)
	goldie.New(t).AssertJson(t, "top_countries", decodeBody(t, rr))
}

func TestHealthHandler(t *testing.T) {
	rr := get(t, HealthHandler(), "/")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "running")
}

func TestRequestIDMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	RequestID(inner).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/countries", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
