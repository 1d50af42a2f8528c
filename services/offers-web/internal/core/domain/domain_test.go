package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
)

func sampleOffers() []contracts.Offer {
	return []contracts.Offer{
		{ID: 1, OfferedBy: "Alice", Price: 250000, Property: contracts.Property{ID: 10, Kind: "house", Location: "Springfield", Bedrooms: 3, Area: 120}},
		{ID: 2, OfferedBy: "Bob", Price: 90000, Property: contracts.Property{ID: 11, Kind: "flat", Location: "Ashford", Bedrooms: 1, Area: 40}},
		{ID: 3, OfferedBy: "Carol", Price: 250000, Property: contracts.Property{ID: 12, Kind: "House", Location: "brighton", Bedrooms: 4, Area: 150}},
	}
}

func ids(offers []contracts.Offer) []int64 {
	out := make([]int64, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.ID)
	}
	return out
}

func TestSortOffers(t *testing.T) {
	offers := sampleOffers()

	byPrice, err := SortOffers(offers, contracts.OrderByPrice, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1, 3}, ids(byPrice), "stable for equal prices")

	byPriceDesc, err := SortOffers(offers, contracts.OrderByPrice, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 2}, ids(byPriceDesc))

	byLocation, err := SortOffers(offers, contracts.OrderByLocation, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, ids(byLocation), "case-insensitive")

	byArea, err := SortOffers(offers, contracts.OrderByArea, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids(byArea))

	assert.Equal(t, []int64{1, 2, 3}, ids(offers), "input is not modified")
}

func TestSortOffersUnknownOrder(t *testing.T) {
	_, err := SortOffers(sampleOffers(), "color", false)
	assert.ErrorIs(t, err, ErrUnknownOrder)
}

func TestSortOffersCoversAllDefaultOptions(t *testing.T) {
	for _, opt := range contracts.DefaultOrderOptions() {
		_, err := SortOffers(sampleOffers(), opt.SortTitle, false)
		assert.NoError(t, err, opt.SortTitle)
	}
}

func TestOfferFilter(t *testing.T) {
	house := "house"
	minPrice := 100000.0
	minBedrooms := 4

	assert.True(t, OfferFilter{}.IsEmpty())
	assert.Len(t, OfferFilter{}.Apply(sampleOffers()), 3)

	byKind := OfferFilter{Kind: &house}.Apply(sampleOffers())
	assert.Equal(t, []int64{1, 3}, ids(byKind))

	byPrice := OfferFilter{MinPrice: &minPrice}.Apply(sampleOffers())
	assert.Equal(t, []int64{1, 3}, ids(byPrice))

	combined := OfferFilter{Kind: &house, MinBedrooms: &minBedrooms}
	assert.False(t, combined.IsEmpty())
	assert.Equal(t, []int64{3}, ids(combined.Apply(sampleOffers())))

	maxPrice := 50000.0
	assert.Empty(t, OfferFilter{MaxPrice: &maxPrice}.Apply(sampleOffers()))
}
