package usecase

import (
	"context"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port"
)

type WithdrawOfferUseCase struct {
	repo   port.OfferRepositoryPort
	events port.OfferEventsPort
}

func NewWithdrawOfferUseCase(repo port.OfferRepositoryPort, events port.OfferEventsPort) *WithdrawOfferUseCase {
	return &WithdrawOfferUseCase{repo: repo, events: events}
}

func (uc *WithdrawOfferUseCase) Execute(ctx context.Context, offerID int64) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "WithdrawOffer",
		"offer_id": offerID,
	})

	if err := uc.repo.DeleteOffer(ctx, offerID); err != nil {
		ucLogger.Debug("Failed to delete offer", port.Fields{"error": err.Error()})
		return err
	}

	event := contracts.OfferEvent{Type: contracts.EventOfferWithdrawn, OfferID: offerID}
	if err := uc.events.PublishOfferEvent(ctx, event); err != nil {
		ucLogger.Error("Offer deleted but event was not published", err, nil)
	}

	ucLogger.Info("Offer withdrawn", nil)
	return nil
}
