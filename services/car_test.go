package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSearchParamsDefaults(t *testing.T) {
	params := CarSearchParams{}
	NormalizeSearchParams(&params)

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultSearchLimit, params.Limit)
	assert.Equal(t, SortNewest, params.SortBy)
	assert.Equal(t, 0.0, params.MinPrice)
}

func TestNormalizeSearchParamsClampsInvalidValues(t *testing.T) {
	params := CarSearchParams{
		Search:   "  civic  ",
		Page:     -3,
		Limit:    -1,
		MinPrice: -500,
		SortBy:   "bogus",
	}
	NormalizeSearchParams(&params)

	assert.Equal(t, "civic", params.Search)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultSearchLimit, params.Limit)
	assert.Equal(t, 0.0, params.MinPrice)
	assert.Equal(t, SortNewest, params.SortBy)
}

func TestNormalizeSearchParamsKeepsValidValues(t *testing.T) {
	params := CarSearchParams{
		Page:   4,
		Limit:  12,
		SortBy: SortPriceDesc,
	}
	NormalizeSearchParams(&params)

	assert.Equal(t, 4, params.Page)
	assert.Equal(t, 12, params.Limit)
	assert.Equal(t, SortPriceDesc, params.SortBy)
}

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name          string
		total         int64
		page, limit   int
		expectedPages int
	}{
		{"exact division", 12, 1, 6, 2},
		{"with remainder", 10, 3, 6, 2},
		{"single item", 1, 1, 6, 1},
		{"empty set", 0, 1, 6, 0},
		{"limit one", 7, 2, 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPagination(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.expectedPages, p.Pages)
		})
	}
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice("19999.99"))
	assert.NoError(t, ValidatePrice("0"))

	assert.Error(t, ValidatePrice("abc"))
	assert.Error(t, ValidatePrice(""))
	assert.Error(t, ValidatePrice("-100"))
}

func TestEscapeLikePattern(t *testing.T) {
	assert.Equal(t, "%civic%", escapeLikePattern("Civic"))

	// % 與 _ 是 LIKE 的萬用字元，必須當一般文字比對
	assert.Equal(t, `%100\%%`, escapeLikePattern("100%"))
	assert.Equal(t, `%model\_s%`, escapeLikePattern("Model_S"))
	assert.Equal(t, `%a\\b%`, escapeLikePattern(`a\b`))
}

func TestSortFacetsUsesOrdinalOrder(t *testing.T) {
	facets := &CarFilterFacets{
		Brands:    []string{"audi", "BMW", "Honda"},
		BodyTypes: []string{"Sedan", "SUV"},
	}
	sortFacets(facets)

	// 位元組序：大寫字母排在小寫之前
	assert.Equal(t, []string{"BMW", "Honda", "audi"}, facets.Brands)
	assert.Equal(t, []string{"SUV", "Sedan"}, facets.BodyTypes)
}

func TestResolvePriceRangeDefaultsWhenEmpty(t *testing.T) {
	// 沒有任何可售車輛時 MIN/MAX 為 NULL，套用預設區間
	priceRange := resolvePriceRange(sql.NullFloat64{}, sql.NullFloat64{})
	assert.Equal(t, float64(DefaultPriceRangeMin), priceRange.Min)
	assert.Equal(t, float64(DefaultPriceRangeMax), priceRange.Max)
}

func TestResolvePriceRangeUsesAggregates(t *testing.T) {
	priceRange := resolvePriceRange(
		sql.NullFloat64{Float64: 8500, Valid: true},
		sql.NullFloat64{Float64: 74999.5, Valid: true},
	)
	assert.Equal(t, 8500.0, priceRange.Min)
	assert.Equal(t, 74999.5, priceRange.Max)
}
