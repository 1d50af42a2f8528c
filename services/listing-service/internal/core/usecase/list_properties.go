package usecase

import (
	"context"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port"
)

type ListPropertiesUseCase struct {
	repo port.OfferRepositoryPort
}

func NewListPropertiesUseCase(repo port.OfferRepositoryPort) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{repo: repo}
}

func (uc *ListPropertiesUseCase) Execute(ctx context.Context) ([]contracts.Property, error) {
	return uc.repo.ListProperties(ctx)
}
