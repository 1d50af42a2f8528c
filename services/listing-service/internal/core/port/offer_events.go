package port

import (
	"context"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
)

// OfferEventsPort публикует события об изменении предложений.
type OfferEventsPort interface {
	PublishOfferEvent(ctx context.Context, event contracts.OfferEvent) error
}
