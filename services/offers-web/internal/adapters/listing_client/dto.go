package listing_client

import "github.com/yuriynekrasov/hizzle/pkg/contracts"

type offerPageResponse struct {
	Data  []contracts.Offer `json:"data"`
	Total int               `json:"total"`
}

type orderByListResponse struct {
	Data []contracts.OrderBy `json:"data"`
}
