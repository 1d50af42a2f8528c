package usecases_port

import (
	"context"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
)

type ListPropertiesUseCase interface {
	Execute(ctx context.Context) ([]contracts.Property, error)
}
