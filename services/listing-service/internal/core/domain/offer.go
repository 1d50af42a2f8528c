package domain

import (
	"errors"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
)

var (
	ErrOfferNotFound = errors.New("offer not found")
	ErrOfferExists   = errors.New("offer already exists")
	ErrUnknownOrder  = errors.New("unknown order")
)

// Значения пагинации по умолчанию.
const (
	DefaultPerPage = 50
	MaxPerPage     = 200
)

// OfferFilter - необязательные условия отбора, nil-поле не участвует.
type OfferFilter struct {
	Kind        *string
	MinPrice    *float64
	MaxPrice    *float64
	MinBedrooms *int
}

// ListOffersQuery - параметры выборки списка.
type ListOffersQuery struct {
	Filter     OfferFilter
	Order      string
	Descending bool
	Limit      int
	Offset     int
}

// OfferPage - страница результатов и общее число подходящих предложений.
type OfferPage struct {
	Offers []contracts.Offer
	Total  int
}
