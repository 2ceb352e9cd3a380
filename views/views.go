package views

import (
	"fmt"
	"strings"
)

// ViewKind selects which predicate a view needs. It is a closed enumeration;
// anything else is a ValidationError.
type ViewKind string

const (
	// ExactCount matches country spellings case-sensitively and accepts a
	// multi-variant resolution (country IN variants).
	ExactCount ViewKind = "exact-count"
	// GeoPoint requires a single country variant (case-insensitive match)
	// plus non-null coordinates.
	GeoPoint ViewKind = "geo-point"
	// PriceOverlay is GeoPoint plus a non-blank price level.
	PriceOverlay ViewKind = "price-overlay"
	// RatingRanked is GeoPoint; ordering and the cap are applied when the
	// result is shaped.
	RatingRanked ViewKind = "rating-ranked"
	// Experience has no coordinate requirement; sub-score validity is
	// checked at scan time.
	Experience ViewKind = "experience"
	// CuisineDistribution requires a rating and a non-blank cuisines field.
	CuisineDistribution ViewKind = "cuisine-distribution"
)

// ParseViewKind maps a request string onto the closed view-kind enumeration.
func ParseViewKind(s string) (ViewKind, error) {
	switch ViewKind(s) {
	case ExactCount, GeoPoint, PriceOverlay, RatingRanked, Experience, CuisineDistribution:
		return ViewKind(s), nil
	}
	return "", &ValidationError{Field: "viewKind", Reason: fmt.Sprintf("unrecognized view kind %q", s)}
}

// The three price levels present in the data set. Anything else, including
// blank or padded values, is excluded from price-based views.
const (
	PriceCheap  = "€"
	PriceMedium = "€€-€€€"
	PriceLuxury = "€€€€"
)

// PriceToken trims a raw price level and reports whether it is one of the
// three recognized tokens.
func PriceToken(raw string) (string, bool) {
	t := strings.TrimSpace(raw)
	switch t {
	case PriceCheap, PriceMedium, PriceLuxury:
		return t, true
	}
	return "", false
}

// Predicate is the conjunctive row filter for one view: a WHERE fragment with
// positional placeholders and the matching arguments. It is built per request
// and discarded after the aggregation runs.
type Predicate struct {
	Conditions []string
	Args       []any
}

// Where renders the predicate as a WHERE clause, or an empty string when the
// view has no restrictions.
func (p Predicate) Where() string {
	if len(p.Conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(p.Conditions, " AND ")
}

// Compose builds the predicate for a view from the resolved country variants.
// display is the canonical name the user selected; variants is the resolver
// output (empty for views with no country selection). Placeholders are
// numbered in order and each is used exactly once.
func Compose(kind ViewKind, display string, variants []string) (Predicate, error) {
	var conditions []string
	var args []any
	idx := 1

	addCountry := func(expr string, value string) {
		conditions = append(conditions, fmt.Sprintf(expr, idx))
		args = append(args, value)
		idx++
	}

	switch kind {
	case ExactCount:
		if len(variants) > 0 {
			placeholders := make([]string, len(variants))
			for i, v := range variants {
				placeholders[i] = fmt.Sprintf("$%d", idx)
				args = append(args, v)
				idx++
			}
			conditions = append(conditions, fmt.Sprintf("country IN (%s)", strings.Join(placeholders, ", ")))
		}

	case GeoPoint, PriceOverlay, RatingRanked:
		rep, err := representative(display, variants)
		if err != nil {
			return Predicate{}, err
		}
		addCountry("LOWER(country) = LOWER($%d)", rep)
		conditions = append(conditions, "latitude IS NOT NULL", "longitude IS NOT NULL")
		if kind == PriceOverlay {
			conditions = append(conditions, "price_level IS NOT NULL", "TRIM(price_level) <> ''")
		}

	case Experience:
		if len(variants) > 0 {
			rep, err := representative(display, variants)
			if err != nil {
				return Predicate{}, err
			}
			addCountry("country = $%d", rep)
		} else {
			conditions = append(conditions, "country IS NOT NULL")
		}

	case CuisineDistribution:
		conditions = append(conditions, "avg_rating IS NOT NULL", "cuisines IS NOT NULL", "TRIM(cuisines) <> ''")
		if len(variants) > 0 {
			rep, err := representative(display, variants)
			if err != nil {
				return Predicate{}, err
			}
			addCountry("country = $%d", rep)
		}

	default:
		return Predicate{}, &ValidationError{Field: "viewKind", Reason: fmt.Sprintf("unrecognized view kind %q", string(kind))}
	}

	return Predicate{Conditions: conditions, Args: args}, nil
}

// representative reduces a variant set to the single value a one-country view
// can use. A single variant is used as-is. A multi-variant set is usable only
// when the display name is itself one of its variants (e.g. "Ireland" among
// {"Ireland", "Northern Ireland"}); otherwise the view is rejected rather
// than silently matching a subset of the rows.
func representative(display string, variants []string) (string, error) {
	if len(variants) == 1 {
		return variants[0], nil
	}
	for _, v := range variants {
		if v == display {
			return display, nil
		}
	}
	return "", &ViewConfigurationError{Country: display, Variants: variants}
}
