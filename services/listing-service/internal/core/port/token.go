package port

import (
	"context"

	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/domain"
)

type TokenValidatorPort interface {
	ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error)
}
