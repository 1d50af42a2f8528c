package rest

import "github.com/yuriynekrasov/hizzle/pkg/contracts"

// offerPageResponse соответствует контракту OfferPage.
type offerPageResponse struct {
	Data  []contracts.Offer `json:"data"`
	Total int               `json:"total"`
}

type propertyListResponse struct {
	Data []contracts.Property `json:"data"`
}

type orderByListResponse struct {
	Data []contracts.OrderBy `json:"data"`
}

type setOrderRequest struct {
	SortTitle  string `json:"sortTitle"`
	Descending bool   `json:"desc"`
}

type refreshResponse struct {
	Status      string `json:"status"`
	OffersCount int    `json:"offers_count"`
}

// offersPageData - данные шаблона списка предложений.
type offersPageData struct {
	Offers       []contracts.Offer
	OrderOptions []contracts.OrderBy
	CurrentOrder string
	Descending   bool
	Error        string
}

type errorPageData struct {
	Status  int
	Message string
}
