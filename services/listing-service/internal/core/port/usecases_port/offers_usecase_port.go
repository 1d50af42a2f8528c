package usecases_port

import (
	"context"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/domain"
)

type ListOffersUseCase interface {
	Execute(ctx context.Context, query domain.ListOffersQuery) (domain.OfferPage, error)
}

type GetOfferUseCase interface {
	Execute(ctx context.Context, offerID int64) (contracts.Offer, error)
}

type PublishOfferUseCase interface {
	Execute(ctx context.Context, offer contracts.Offer) error
}

type WithdrawOfferUseCase interface {
	Execute(ctx context.Context, offerID int64) error
}
