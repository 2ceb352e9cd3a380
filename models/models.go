package models

// GeoPoint is one restaurant placed on a map or heatmap. PriceLevel is set
// only for price-overlay views.
type GeoPoint struct {
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	PriceLevel string  `json:"price_level,omitempty"`
}

// CountResult is the exact-count view output. Country echoes the resolved
// variants the count was taken over.
type CountResult struct {
	Country []string `json:"country"`
	Count   int      `json:"count"`
}

// CountryStats is one grouped-stats row: total rows plus how many are
// flagged vegan-friendly and gluten-free-friendly.
type CountryStats struct {
	Country          string `json:"country"`
	TotalRestaurants int    `json:"total_restaurants"`
	Vegan            int    `json:"vegan"`
	GlutenFree       int    `json:"gluten_free"`
}

// PriceBuckets counts rows per recognized price level. Rows with a blank or
// unrecognized price level are not counted in any bucket.
type PriceBuckets struct {
	Cheap  int `json:"cheap"`
	Medium int `json:"medium"`
	Luxury int `json:"luxury"`
}

// RankedRestaurant is one row of a top-N list. Nullable fields stay null in
// JSON rather than collapsing to zero.
type RankedRestaurant struct {
	Name         string   `json:"name"`
	City         string   `json:"city"`
	AvgRating    *float64 `json:"avg_rating"`
	TotalReviews *int64   `json:"total_reviews_count"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
}

// ExperienceRow holds the averaged experience sub-scores for one country.
// A nil score means no row in the group had a parseable value.
type ExperienceRow struct {
	Country    string   `json:"country"`
	Food       *float64 `json:"food"`
	Service    *float64 `json:"service"`
	Value      *float64 `json:"value"`
	Atmosphere *float64 `json:"atmosphere"`
}

// ScatterPoint is one price-vs-rating sample.
type ScatterPoint struct {
	Name         string  `json:"name"`
	AvgRating    float64 `json:"avg_rating"`
	PriceLevel   string  `json:"price_level"`
	TotalReviews int64   `json:"total_reviews_count"`
	Country      string  `json:"country"`
}

// CountryCount is one leaderboard row.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// CountryAverages is one threshold-grouped row: per-country averages over
// groups large enough to be meaningful.
type CountryAverages struct {
	Country          string   `json:"country"`
	AvgRating        float64  `json:"avg_rating"`
	AvgPriceLevel    *float64 `json:"avg_price_level,omitempty"`
	TotalRestaurants int      `json:"total_restaurants"`
}
