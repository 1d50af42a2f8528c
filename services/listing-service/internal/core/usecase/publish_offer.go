package usecase

import (
	"context"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port"
)

// PublishOfferUseCase сохраняет новое предложение и сообщает о нем подписчикам.
type PublishOfferUseCase struct {
	repo   port.OfferRepositoryPort
	events port.OfferEventsPort
}

func NewPublishOfferUseCase(repo port.OfferRepositoryPort, events port.OfferEventsPort) *PublishOfferUseCase {
	return &PublishOfferUseCase{repo: repo, events: events}
}

// Execute возвращает contracts.ErrInvalidOffer для некорректного предложения.
// Ошибка публикации события не отменяет сохранение.
func (uc *PublishOfferUseCase) Execute(ctx context.Context, offer contracts.Offer) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "PublishOffer",
		"offer_id": offer.ID,
	})

	if err := offer.Validate(); err != nil {
		ucLogger.Warn("Rejected invalid offer", port.Fields{"error": err.Error()})
		return err
	}

	if err := uc.repo.CreateOffer(ctx, offer); err != nil {
		ucLogger.Error("Failed to store offer", err, nil)
		return err
	}

	event := contracts.OfferEvent{Type: contracts.EventOfferPublished, OfferID: offer.ID, Offer: &offer}
	if err := uc.events.PublishOfferEvent(ctx, event); err != nil {
		ucLogger.Error("Offer stored but event was not published", err, nil)
	}

	ucLogger.Info("Offer published", nil)
	return nil
}
