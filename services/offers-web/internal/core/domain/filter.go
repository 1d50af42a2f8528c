package domain

import (
	"strings"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
)

// OfferFilter - необязательные условия отбора. nil-поле не участвует в отборе.
type OfferFilter struct {
	Kind        *string
	MinPrice    *float64
	MaxPrice    *float64
	MinBedrooms *int
}

// IsEmpty сообщает, что ни одно условие не задано.
func (f OfferFilter) IsEmpty() bool {
	return f.Kind == nil && f.MinPrice == nil && f.MaxPrice == nil && f.MinBedrooms == nil
}

func (f OfferFilter) Matches(o contracts.Offer) bool {
	if f.Kind != nil && !strings.EqualFold(o.Property.Kind, *f.Kind) {
		return false
	}
	if f.MinPrice != nil && o.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && o.Price > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms != nil && o.Property.Bedrooms < *f.MinBedrooms {
		return false
	}
	return true
}

// Apply возвращает новый срез с подходящими предложениями.
func (f OfferFilter) Apply(offers []contracts.Offer) []contracts.Offer {
	result := make([]contracts.Offer, 0, len(offers))
	for _, o := range offers {
		if f.Matches(o) {
			result = append(result, o)
		}
	}
	return result
}
