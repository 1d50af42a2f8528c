package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/domain"
)

func TestApplyFiltersEmpty(t *testing.T) {
	where, args := applyFilters(domain.OfferFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestApplyFilters(t *testing.T) {
	kind := "house"
	minPrice, maxPrice := 100.0, 500.0
	minBedrooms := 2

	where, args := applyFilters(domain.OfferFilter{
		Kind:        &kind,
		MinPrice:    &minPrice,
		MaxPrice:    &maxPrice,
		MinBedrooms: &minBedrooms,
	})

	assert.Equal(t, "WHERE lower(property_kind) = lower($1) AND price >= $2 AND price <= $3 AND property_bedrooms >= $4", where)
	assert.Equal(t, []interface{}{"house", 100.0, 500.0, 2}, args)
}

func TestOrderClause(t *testing.T) {
	clause, err := orderClause(contracts.OrderByPrice, true)
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY price DESC, id ASC", clause)

	clause, err = orderClause(contracts.OrderByID, false)
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY id ASC", clause)

	_, err = orderClause("price; DROP TABLE offers", false)
	assert.ErrorIs(t, err, domain.ErrUnknownOrder)
}

func TestEveryDefaultOrderHasColumn(t *testing.T) {
	for _, opt := range contracts.DefaultOrderOptions() {
		_, err := orderClause(opt.SortTitle, false)
		assert.NoError(t, err, opt.SortTitle)
	}
}
