package port

import (
	"context"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
)

// ListingServicePort - клиент сервиса объявлений.
type ListingServicePort interface {
	ListOffers(ctx context.Context) ([]contracts.Offer, error)
	// GetOffer возвращает domain.ErrOfferNotFound, если предложения нет.
	GetOffer(ctx context.Context, offerID int64) (contracts.Offer, error)
	ListOrderOptions(ctx context.Context) ([]contracts.OrderBy, error)
}
