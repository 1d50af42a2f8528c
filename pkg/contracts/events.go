package contracts

// Типы событий о предложениях.
const (
	EventOfferPublished = "offer.published"
	EventOfferWithdrawn = "offer.withdrawn"
)

// Параметры RabbitMQ, общие для издателя и подписчиков.
const (
	OffersExchange        = "offers_exchange"
	OffersExchangeType    = "direct"
	RoutingKeyOfferEvents = "offers.events"
)

// OfferEvent публикуется listing-service после изменения предложения.
// Для offer.published поле Offer обязательно.
type OfferEvent struct {
	Type    string `json:"type"`
	OfferID int64  `json:"offer_id"`
	Offer   *Offer `json:"offer,omitempty"`
}
