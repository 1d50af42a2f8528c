package usecase

import (
	"context"
	"fmt"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/domain"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port"
)

type ListOffersUseCase struct {
	repo port.OfferRepositoryPort
}

func NewListOffersUseCase(repo port.OfferRepositoryPort) *ListOffersUseCase {
	return &ListOffersUseCase{repo: repo}
}

// Execute нормализует пагинацию и проверяет ключ сортировки.
func (uc *ListOffersUseCase) Execute(ctx context.Context, query domain.ListOffersQuery) (domain.OfferPage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListOffers",
		"order":    query.Order,
	})

	if query.Order == "" {
		query.Order = contracts.OrderByID
	}
	if !contracts.IsKnownOrder(query.Order) {
		return domain.OfferPage{}, fmt.Errorf("%w: '%s'", domain.ErrUnknownOrder, query.Order)
	}
	if query.Limit <= 0 {
		query.Limit = domain.DefaultPerPage
	}
	if query.Limit > domain.MaxPerPage {
		query.Limit = domain.MaxPerPage
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	page, err := uc.repo.ListOffers(ctx, query)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return domain.OfferPage{}, err
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{"count": len(page.Offers), "total": page.Total})
	return page, nil
}
