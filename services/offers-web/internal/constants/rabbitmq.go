package constants

// Очередь offers-web эксклюзивная и именуется сервером: каждый экземпляр
// получает все события о предложениях.
const (
	OfferEventsConsumerTagPrefix = "offers-web"
	OfferEventsPrefetchCount     = 10
)

// Заголовок AMQP, в котором передается trace_id.
const TraceIDHeader = "x-trace-id"
