package rest

import "github.com/yuriynekrasov/hizzle/pkg/contracts"

// OfferPageResponse - тело ответа GET /api/v1/offers.
type OfferPageResponse struct {
	Data    []contracts.Offer `json:"data"`
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"perPage"`
}

type PropertyListResponse struct {
	Data []contracts.Property `json:"data"`
}

type OrderByListResponse struct {
	Data []contracts.OrderBy `json:"data"`
}
