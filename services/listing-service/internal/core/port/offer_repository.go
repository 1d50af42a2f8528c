package port

import (
	"context"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/domain"
)

// OfferRepositoryPort - хранилище предложений.
type OfferRepositoryPort interface {
	ListOffers(ctx context.Context, query domain.ListOffersQuery) (domain.OfferPage, error)
	// GetOffer возвращает domain.ErrOfferNotFound, если предложения нет.
	GetOffer(ctx context.Context, offerID int64) (contracts.Offer, error)
	// CreateOffer возвращает domain.ErrOfferExists при повторном ID.
	CreateOffer(ctx context.Context, offer contracts.Offer) error
	DeleteOffer(ctx context.Context, offerID int64) error
	ListProperties(ctx context.Context) ([]contracts.Property, error)
}
