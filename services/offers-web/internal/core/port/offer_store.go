package port

import "github.com/yuriynekrasov/hizzle/pkg/contracts"

// OfferStorePort - мутации хранилища, которые применяют события из брокера.
type OfferStorePort interface {
	UpsertOffer(offer contracts.Offer)
	RemoveOffer(offerID int64) bool
}
