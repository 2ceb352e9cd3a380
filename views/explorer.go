package views

import (
	"database/sql"
	"math"
	"sort"
	"strings"

	"sabormap/countries"
	"sabormap/models"
)

// Fixed result caps and the minimum group size for threshold views.
const (
	TopRestaurantsLimit = 3
	TopCafesLimit       = 3
	LeaderboardLimit    = 5
	TopStatsLimit       = 3
	MinGroupSize        = 8
	AveragesLimit       = 50
	AvgRatingLimit      = 20
)

// Explorer runs composed predicates against the restaurants table and shapes
// the results. Filtering happens in SQL; ordering, caps, bucketing, token
// splitting and numeric validation happen here over the scanned rows, so the
// semantics do not depend on store dialect. An Explorer is safe for
// concurrent use: it holds no mutable state.
type Explorer struct {
	DB      *sql.DB
	Aliases countries.Table
}

func NewExplorer(db *sql.DB, aliases countries.Table) *Explorer {
	return &Explorer{DB: db, Aliases: aliases}
}

// Count returns the number of rows whose country matches any resolved
// variant, case-sensitively.
func (e *Explorer) Count(country string) (models.CountResult, error) {
	variants := e.Aliases.Resolve(country)
	pred, err := Compose(ExactCount, country, variants)
	if err != nil {
		return models.CountResult{}, err
	}

	var count int
	query := "SELECT COUNT(*) FROM restaurants " + pred.Where()
	if err := e.DB.QueryRow(query, pred.Args...).Scan(&count); err != nil {
		return models.CountResult{}, &StoreFailure{Op: "restaurant count", Err: err}
	}
	return models.CountResult{Country: variants, Count: count}, nil
}

// CountryStats aggregates all resolved variants of one country into a single
// group labeled with the canonical name. found is false when no row matched;
// the caller renders that as an explicit empty object, never an error.
func (e *Explorer) CountryStats(country string) (models.CountryStats, bool, error) {
	variants := e.Aliases.Resolve(country)
	pred, err := Compose(ExactCount, country, variants)
	if err != nil {
		return models.CountryStats{}, false, err
	}

	rows, err := e.fetchStatRows("country stats", pred)
	if err != nil {
		return models.CountryStats{}, false, err
	}
	if len(rows) == 0 {
		return models.CountryStats{}, false, nil
	}

	stats := models.CountryStats{Country: country, TotalRestaurants: len(rows)}
	for _, r := range rows {
		if r.vegan {
			stats.Vegan++
		}
		if r.glutenFree {
			stats.GlutenFree++
		}
	}
	return stats, true, nil
}

// PriceBuckets counts matching rows per recognized price token. Blank, null
// and unrecognized price levels contribute to no bucket.
func (e *Explorer) PriceBuckets(country string) (models.PriceBuckets, error) {
	variants := e.Aliases.Resolve(country)
	pred, err := Compose(ExactCount, country, variants)
	if err != nil {
		return models.PriceBuckets{}, err
	}

	rows, err := e.fetchStatRows("price buckets", pred)
	if err != nil {
		return models.PriceBuckets{}, err
	}

	var buckets models.PriceBuckets
	for _, r := range rows {
		if !r.price.Valid {
			continue
		}
		switch token, ok := PriceToken(r.price.String); {
		case !ok:
		case token == PriceCheap:
			buckets.Cheap++
		case token == PriceMedium:
			buckets.Medium++
		case token == PriceLuxury:
			buckets.Luxury++
		}
	}
	return buckets, nil
}

// GeoPoints returns map points for one country. Rows whose coordinates do
// not parse as finite decimals are dropped. With withPrice set, the view is a
// price overlay: rows must carry one of the recognized price tokens.
func (e *Explorer) GeoPoints(country string, withPrice bool) ([]models.GeoPoint, error) {
	kind := GeoPoint
	if withPrice {
		kind = PriceOverlay
	}
	variants := e.Aliases.Resolve(country)
	pred, err := Compose(kind, country, variants)
	if err != nil {
		return nil, err
	}

	query := "SELECT restaurant_name, latitude, longitude, price_level FROM restaurants " + pred.Where()
	rows, err := e.DB.Query(query, pred.Args...)
	if err != nil {
		return nil, &StoreFailure{Op: "geo points", Err: err}
	}
	defer rows.Close()

	points := []models.GeoPoint{}
	for rows.Next() {
		var name, lat, lng, price sql.NullString
		if err := rows.Scan(&name, &lat, &lng, &price); err != nil {
			return nil, &StoreFailure{Op: "geo points", Err: err}
		}
		latV, okLat := ParseCoordinate(strings.TrimSpace(lat.String))
		lngV, okLng := ParseCoordinate(strings.TrimSpace(lng.String))
		if !lat.Valid || !lng.Valid || !okLat || !okLng {
			continue
		}
		p := models.GeoPoint{Name: name.String, Lat: latV, Lng: lngV}
		if withPrice {
			token, ok := PriceToken(price.String)
			if !ok {
				continue
			}
			p.PriceLevel = token
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreFailure{Op: "geo points", Err: err}
	}
	return points, nil
}

// TopRestaurants returns the most-reviewed restaurants with usable
// coordinates, reviews descending, nulls last, ties in input order.
func (e *Explorer) TopRestaurants(country string) ([]models.RankedRestaurant, error) {
	variants := e.Aliases.Resolve(country)
	pred, err := Compose(RatingRanked, country, variants)
	if err != nil {
		return nil, err
	}

	ranked, err := e.fetchRanked("top restaurants", pred, true)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return nullInt64After(ranked[i].TotalReviews, ranked[j].TotalReviews)
	})
	return limit(ranked, TopRestaurantsLimit), nil
}

// TopCafes returns the best-rated cafe-like restaurants for one country,
// rating descending then reviews descending, nulls last.
func (e *Explorer) TopCafes(country string) ([]models.RankedRestaurant, error) {
	variants := e.Aliases.Resolve(country)
	pred, err := Compose(Experience, country, variants)
	if err != nil {
		return nil, err
	}
	pred.Conditions = append(pred.Conditions,
		"(LOWER(cuisines) LIKE '%cafe%' OR LOWER(top_tags) LIKE '%cafe%' OR LOWER(restaurant_name) LIKE '%cafe%')")

	ranked, err := e.fetchRanked("top cafes", pred, false)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ri, rj := ranked[i].AvgRating, ranked[j].AvgRating; !floatEqual(ri, rj) {
			return nullFloatAfter(ri, rj)
		}
		return nullInt64After(ranked[i].TotalReviews, ranked[j].TotalReviews)
	})
	return limit(ranked, TopCafesLimit), nil
}

// ExperienceByCountry averages the strictly parsed experience sub-scores per
// country, alphabetically. country narrows the result to one exact spelling;
// empty means all countries.
func (e *Explorer) ExperienceByCountry(country string) ([]models.ExperienceRow, error) {
	var variants []string
	if country != "" {
		variants = e.Aliases.Resolve(country)
	}
	pred, err := Compose(Experience, country, variants)
	if err != nil {
		return nil, err
	}

	query := "SELECT country, food, service, value, atmosphere FROM restaurants " + pred.Where()
	rows, err := e.DB.Query(query, pred.Args...)
	if err != nil {
		return nil, &StoreFailure{Op: "experience by country", Err: err}
	}
	defer rows.Close()

	type scores struct{ food, service, value, atmosphere scoreAvg }
	index := map[string]int{}
	var order []string
	var groups []scores

	for rows.Next() {
		var c, food, service, value, atmosphere sql.NullString
		if err := rows.Scan(&c, &food, &service, &value, &atmosphere); err != nil {
			return nil, &StoreFailure{Op: "experience by country", Err: err}
		}
		if !c.Valid {
			continue
		}
		i, ok := index[c.String]
		if !ok {
			i = len(groups)
			index[c.String] = i
			order = append(order, c.String)
			groups = append(groups, scores{})
		}
		groups[i].food.add(food)
		groups[i].service.add(service)
		groups[i].value.add(value)
		groups[i].atmosphere.add(atmosphere)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreFailure{Op: "experience by country", Err: err}
	}

	sort.Strings(order)
	result := []models.ExperienceRow{}
	for _, c := range order {
		g := groups[index[c]]
		result = append(result, models.ExperienceRow{
			Country:    c,
			Food:       g.food.mean(),
			Service:    g.service.mean(),
			Value:      g.value.mean(),
			Atmosphere: g.atmosphere.mean(),
		})
	}
	return result, nil
}

// CuisineDistribution maps each trimmed cuisine token to the ratings of the
// rows it appears in. Rows with a null or blank cuisines field contribute
// nothing at all.
func (e *Explorer) CuisineDistribution(country string) (map[string][]float64, error) {
	var variants []string
	if country != "" {
		variants = e.Aliases.Resolve(country)
	}
	pred, err := Compose(CuisineDistribution, country, variants)
	if err != nil {
		return nil, err
	}

	query := "SELECT cuisines, avg_rating FROM restaurants " + pred.Where()
	rows, err := e.DB.Query(query, pred.Args...)
	if err != nil {
		return nil, &StoreFailure{Op: "cuisine distribution", Err: err}
	}
	defer rows.Close()

	dist := map[string][]float64{}
	for rows.Next() {
		var cuisines sql.NullString
		var rating float64
		if err := rows.Scan(&cuisines, &rating); err != nil {
			return nil, &StoreFailure{Op: "cuisine distribution", Err: err}
		}
		for _, token := range strings.Split(cuisines.String, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			dist[token] = append(dist[token], rating)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreFailure{Op: "cuisine distribution", Err: err}
	}
	return dist, nil
}

// PriceVsRating returns the rated, price-labeled, reviewed rows behind the
// price/rating scatter view.
func (e *Explorer) PriceVsRating(country string) ([]models.ScatterPoint, error) {
	var variants []string
	if country != "" {
		variants = e.Aliases.Resolve(country)
	}
	pred, err := Compose(Experience, country, variants)
	if err != nil {
		return nil, err
	}
	pred.Conditions = append(pred.Conditions,
		"avg_rating IS NOT NULL",
		"price_level IS NOT NULL",
		"total_reviews_count IS NOT NULL",
		"total_reviews_count > 0")

	query := "SELECT restaurant_name, avg_rating, price_level, total_reviews_count, country FROM restaurants " + pred.Where()
	rows, err := e.DB.Query(query, pred.Args...)
	if err != nil {
		return nil, &StoreFailure{Op: "price vs rating", Err: err}
	}
	defer rows.Close()

	points := []models.ScatterPoint{}
	for rows.Next() {
		var name, price, c sql.NullString
		var rating float64
		var reviews int64
		if err := rows.Scan(&name, &rating, &price, &reviews, &c); err != nil {
			return nil, &StoreFailure{Op: "price vs rating", Err: err}
		}
		token, ok := PriceToken(price.String)
		if !ok {
			continue
		}
		points = append(points, models.ScatterPoint{
			Name:         name.String,
			AvgRating:    rating,
			PriceLevel:   token,
			TotalReviews: reviews,
			Country:      c.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreFailure{Op: "price vs rating", Err: err}
	}
	return points, nil
}

// Countries lists the distinct non-blank country spellings in the store.
func (e *Explorer) Countries() ([]string, error) {
	query := "SELECT DISTINCT country FROM restaurants WHERE country IS NOT NULL AND TRIM(country) <> '' ORDER BY country"
	rows, err := e.DB.Query(query)
	if err != nil {
		return nil, &StoreFailure{Op: "country list", Err: err}
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, &StoreFailure{Op: "country list", Err: err}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreFailure{Op: "country list", Err: err}
	}
	return out, nil
}

// Leaderboard ranks countries by row count, descending, capped at 5. Ties
// keep the order countries first appear in the store.
func (e *Explorer) Leaderboard() ([]models.CountryCount, error) {
	rows, err := e.fetchStatRows("country leaderboard", countryScopedPredicate())
	if err != nil {
		return nil, err
	}

	groups := groupByCountry(rows)
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].rows) > len(groups[j].rows)
	})

	result := []models.CountryCount{}
	for _, g := range limit(groups, LeaderboardLimit) {
		result = append(result, models.CountryCount{Country: g.country, Count: len(g.rows)})
	}
	return result, nil
}

// TopCountryStats returns grouped stats for the countries with the most
// rows, descending, capped at 3.
func (e *Explorer) TopCountryStats() ([]models.CountryStats, error) {
	rows, err := e.fetchStatRows("top country stats", countryScopedPredicate())
	if err != nil {
		return nil, err
	}

	groups := groupByCountry(rows)
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].rows) > len(groups[j].rows)
	})

	result := []models.CountryStats{}
	for _, g := range limit(groups, TopStatsLimit) {
		result = append(result, g.stats())
	}
	return result, nil
}

// CountryAverages ranks countries by average rating over rows that carry
// both a rating and a recognized price level, keeping only groups with more
// than MinGroupSize rows, capped at 50. The price level is averaged on a
// 1..3 scale.
func (e *Explorer) CountryAverages() ([]models.CountryAverages, error) {
	pred := countryScopedPredicate()
	pred.Conditions = append(pred.Conditions,
		"avg_rating IS NOT NULL",
		"price_level IS NOT NULL",
		"TRIM(price_level) <> ''")

	rows, err := e.fetchStatRows("country averages", pred)
	if err != nil {
		return nil, err
	}

	result := []models.CountryAverages{}
	for _, g := range thresholdGroups(rows) {
		row := models.CountryAverages{
			Country:          g.country,
			AvgRating:        g.meanRating(),
			AvgPriceLevel:    g.meanPriceLevel(),
			TotalRestaurants: len(g.rows),
		}
		result = append(result, row)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AvgRating > result[j].AvgRating
	})
	return limit(result, AveragesLimit), nil
}

// CountryAverageRatings ranks countries by average rating alone, rounded to
// two decimals, groups larger than MinGroupSize, capped at 20.
func (e *Explorer) CountryAverageRatings() ([]models.CountryAverages, error) {
	pred := countryScopedPredicate()
	pred.Conditions = append(pred.Conditions, "avg_rating IS NOT NULL")

	rows, err := e.fetchStatRows("country average ratings", pred)
	if err != nil {
		return nil, err
	}

	result := []models.CountryAverages{}
	for _, g := range thresholdGroups(rows) {
		result = append(result, models.CountryAverages{
			Country:          g.country,
			AvgRating:        math.Round(g.meanRating()*100) / 100,
			TotalRestaurants: len(g.rows),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AvgRating > result[j].AvgRating
	})
	return limit(result, AvgRatingLimit), nil
}

// ---------------------------------------------------------------------------
// row fetching and grouping

// statRow is one scanned restaurant row reduced to the fields the grouped
// shapes need.
type statRow struct {
	country    string
	vegan      bool
	glutenFree bool
	rating     sql.NullFloat64
	price      sql.NullString
}

func (e *Explorer) fetchStatRows(op string, pred Predicate) ([]statRow, error) {
	query := "SELECT country, vegan_options, gluten_free, avg_rating, price_level FROM restaurants " + pred.Where()
	rows, err := e.DB.Query(query, pred.Args...)
	if err != nil {
		return nil, &StoreFailure{Op: op, Err: err}
	}
	defer rows.Close()

	out := []statRow{}
	for rows.Next() {
		var country, vegan, gluten, price sql.NullString
		var rating sql.NullFloat64
		if err := rows.Scan(&country, &vegan, &gluten, &rating, &price); err != nil {
			return nil, &StoreFailure{Op: op, Err: err}
		}
		if !country.Valid {
			continue
		}
		out = append(out, statRow{
			country:    country.String,
			vegan:      flagSet(vegan),
			glutenFree: flagSet(gluten),
			rating:     rating,
			price:      price,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreFailure{Op: op, Err: err}
	}
	return out, nil
}

func (e *Explorer) fetchRanked(op string, pred Predicate, withGeo bool) ([]models.RankedRestaurant, error) {
	fields := "restaurant_name, city, avg_rating, total_reviews_count"
	if withGeo {
		fields += ", latitude, longitude"
	}
	query := "SELECT " + fields + " FROM restaurants " + pred.Where()
	rows, err := e.DB.Query(query, pred.Args...)
	if err != nil {
		return nil, &StoreFailure{Op: op, Err: err}
	}
	defer rows.Close()

	out := []models.RankedRestaurant{}
	for rows.Next() {
		var name, city, lat, lng sql.NullString
		var rating sql.NullFloat64
		var reviews sql.NullInt64
		var scanErr error
		if withGeo {
			scanErr = rows.Scan(&name, &city, &rating, &reviews, &lat, &lng)
		} else {
			scanErr = rows.Scan(&name, &city, &rating, &reviews)
		}
		if scanErr != nil {
			return nil, &StoreFailure{Op: op, Err: scanErr}
		}

		r := models.RankedRestaurant{Name: name.String, City: city.String}
		if rating.Valid {
			v := rating.Float64
			r.AvgRating = &v
		}
		if reviews.Valid {
			v := reviews.Int64
			r.TotalReviews = &v
		}
		if withGeo {
			latV, okLat := ParseCoordinate(strings.TrimSpace(lat.String))
			lngV, okLng := ParseCoordinate(strings.TrimSpace(lng.String))
			if !okLat || !okLng {
				continue
			}
			r.Lat = &latV
			r.Lng = &lngV
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreFailure{Op: op, Err: err}
	}
	return out, nil
}

// countryScopedPredicate restricts a global view to rows with a usable
// country; null-country rows never appear in country-scoped views.
func countryScopedPredicate() Predicate {
	return Predicate{Conditions: []string{"country IS NOT NULL", "TRIM(country) <> ''"}}
}

type countryGroup struct {
	country string
	rows    []statRow
}

func (g *countryGroup) stats() models.CountryStats {
	s := models.CountryStats{Country: g.country, TotalRestaurants: len(g.rows)}
	for _, r := range g.rows {
		if r.vegan {
			s.Vegan++
		}
		if r.glutenFree {
			s.GlutenFree++
		}
	}
	return s
}

// meanRating averages the non-null ratings of the group. Null ratings do not
// count toward the denominator.
func (g *countryGroup) meanRating() float64 {
	sum, n := 0.0, 0
	for _, r := range g.rows {
		if r.rating.Valid {
			sum += r.rating.Float64
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// meanPriceLevel averages the recognized price tokens on a 1..3 scale, or
// nil when no row carries one.
func (g *countryGroup) meanPriceLevel() *float64 {
	sum, n := 0.0, 0
	for _, r := range g.rows {
		if !r.price.Valid {
			continue
		}
		switch token, ok := PriceToken(r.price.String); {
		case !ok:
		case token == PriceCheap:
			sum += 1
			n++
		case token == PriceMedium:
			sum += 2
			n++
		case token == PriceLuxury:
			sum += 3
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}

// groupByCountry groups rows preserving the order countries first appear,
// which is the tie order for ranked shapes.
func groupByCountry(rows []statRow) []*countryGroup {
	index := map[string]int{}
	var groups []*countryGroup
	for _, r := range rows {
		i, ok := index[r.country]
		if !ok {
			i = len(groups)
			index[r.country] = i
			groups = append(groups, &countryGroup{country: r.country})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	return groups
}

// thresholdGroups keeps only groups strictly larger than MinGroupSize.
func thresholdGroups(rows []statRow) []*countryGroup {
	kept := []*countryGroup{}
	for _, g := range groupByCountry(rows) {
		if len(g.rows) > MinGroupSize {
			kept = append(kept, g)
		}
	}
	return kept
}

// scoreAvg accumulates strictly parsed sub-score values.
type scoreAvg struct {
	sum float64
	n   int
}

func (a *scoreAvg) add(v sql.NullString) {
	if !v.Valid {
		return
	}
	if parsed, ok := ParseScore(v.String); ok {
		a.sum += parsed
		a.n++
	}
}

func (a *scoreAvg) mean() *float64 {
	if a.n == 0 {
		return nil
	}
	m := a.sum / float64(a.n)
	return &m
}

func flagSet(v sql.NullString) bool {
	return v.Valid && strings.EqualFold(strings.TrimSpace(v.String), "y")
}

// nullInt64After orders descending with nulls last.
func nullInt64After(a, b *int64) bool {
	if (a == nil) != (b == nil) {
		return a != nil
	}
	if a == nil {
		return false
	}
	return *a > *b
}

// nullFloatAfter orders descending with nulls last.
func nullFloatAfter(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return a != nil
	}
	if a == nil {
		return false
	}
	return *a > *b
}

func floatEqual(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

// limit truncates a slice to n elements without copying.
func limit[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
