package views

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseViewKind(t *testing.T) {
	for _, s := range []string{
		"exact-count", "geo-point", "price-overlay",
		"rating-ranked", "experience", "cuisine-distribution",
	} {
		kind, err := ParseViewKind(s)
		require.NoError(t, err)
		assert.Equal(t, ViewKind(s), kind)
	}

	_, err := ParseViewKind("histogram")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "viewKind", validation.Field)
}

func TestCompose_ExactCountMultiVariant(t *testing.T) {
	variants := []string{"England", "Scotland", "Wales", "Northern Ireland"}

	pred, err := Compose(ExactCount, "United Kingdom", variants)
	require.NoError(t, err)

	assert.Equal(t, []string{"country IN ($1, $2, $3, $4)"}, pred.Conditions)
	assert.Equal(t, []any{"England", "Scotland", "Wales", "Northern Ireland"}, pred.Args)
	assert.Equal(t, "WHERE country IN ($1, $2, $3, $4)", pred.Where())
}

func TestCompose_ExactCountNoCountry(t *testing.T) {
	pred, err := Compose(ExactCount, "", nil)
	require.NoError(t, err)

	assert.Empty(t, pred.Conditions)
	assert.Equal(t, "", pred.Where())
}

func TestCompose_GeoPoint(t *testing.T) {
	pred, err := Compose(GeoPoint, "Spain", []string{"Spain"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"LOWER(country) = LOWER($1)",
		"latitude IS NOT NULL",
		"longitude IS NOT NULL",
	}, pred.Conditions)
	assert.Equal(t, []any{"Spain"}, pred.Args)
}

func TestCompose_PriceOverlayAddsPriceConditions(t *testing.T) {
	pred, err := Compose(PriceOverlay, "Spain", []string{"Spain"})
	require.NoError(t, err)

	assert.Contains(t, pred.Conditions, "price_level IS NOT NULL")
	assert.Contains(t, pred.Conditions, "TRIM(price_level) <> ''")
}

func TestCompose_MultiVariantSingleValueViewRejected(t *testing.T) {
	variants := []string{"England", "Scotland", "Wales", "Northern Ireland"}

	for _, kind := range []ViewKind{GeoPoint, PriceOverlay, RatingRanked, Experience, CuisineDistribution} {
		_, err := Compose(kind, "United Kingdom", variants)
		var config *ViewConfigurationError
		require.ErrorAs(t, err, &config, "kind %s", kind)
		assert.Equal(t, "United Kingdom", config.Country)
		assert.Len(t, config.Variants, 4)
	}
}

func TestCompose_MultiVariantWithSelfRepresentative(t *testing.T) {
	// The display name appears among its own variants, so single-value
	// views use it directly instead of rejecting.
	pred, err := Compose(GeoPoint, "Ireland", []string{"Ireland", "Northern Ireland"})
	require.NoError(t, err)
	assert.Equal(t, []any{"Ireland"}, pred.Args)

	pred, err = Compose(Experience, "Netherlands", []string{"The Netherlands", "Netherlands"})
	require.NoError(t, err)
	assert.Equal(t, []any{"Netherlands"}, pred.Args)
	assert.Contains(t, pred.Conditions, "country = $1")
}

func TestCompose_ExperienceWithoutCountry(t *testing.T) {
	pred, err := Compose(Experience, "", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"country IS NOT NULL"}, pred.Conditions)
	assert.Empty(t, pred.Args)
}

func TestCompose_CuisineDistribution(t *testing.T) {
	pred, err := Compose(CuisineDistribution, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"avg_rating IS NOT NULL",
		"cuisines IS NOT NULL",
		"TRIM(cuisines) <> ''",
	}, pred.Conditions)

	pred, err = Compose(CuisineDistribution, "Spain", []string{"Spain"})
	require.NoError(t, err)
	assert.Contains(t, pred.Conditions, "country = $1")
	assert.Equal(t, []any{"Spain"}, pred.Args)
}

func TestCompose_UnknownKind(t *testing.T) {
	_, err := Compose(ViewKind("nope"), "", nil)
	var validation *ValidationError
	assert.True(t, errors.As(err, &validation))
}

func TestPriceToken(t *testing.T) {
	token, ok := PriceToken(" € ")
	require.True(t, ok)
	assert.Equal(t, PriceCheap, token)

	token, ok = PriceToken("€€-€€€")
	require.True(t, ok)
	assert.Equal(t, PriceMedium, token)

	for _, raw := range []string{"", "  ", "$$", "€€", "€€€€€"} {
		_, ok := PriceToken(raw)
		assert.False(t, ok, "raw %q", raw)
	}
}
