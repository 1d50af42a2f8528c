package usecase

import (
	"context"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port"
)

type GetOfferUseCase struct {
	repo port.OfferRepositoryPort
}

func NewGetOfferUseCase(repo port.OfferRepositoryPort) *GetOfferUseCase {
	return &GetOfferUseCase{repo: repo}
}

func (uc *GetOfferUseCase) Execute(ctx context.Context, offerID int64) (contracts.Offer, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetOffer",
		"offer_id": offerID,
	})

	offer, err := uc.repo.GetOffer(ctx, offerID)
	if err != nil {
		ucLogger.Debug("Offer lookup failed", port.Fields{"error": err.Error()})
		return contracts.Offer{}, err
	}
	return offer, nil
}
