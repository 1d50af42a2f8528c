package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/rest_common"
)

// EventsHandler держит SSE-соединения с браузерами.
type EventsHandler struct {
	notifier  *SSENotifier
	keepAlive time.Duration
}

// Subscribe обрабатывает GET /api/v1/events
func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		rest_common.WriteJSONError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := h.notifier.AddClient()
	defer h.notifier.RemoveClient(clientChan)

	logger.Info("New client subscribed to SSE events", nil)

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case data := <-clientChan:
			if _, err := w.Write(data); err != nil {
				logger.Error("Error writing to client, closing SSE connection", err, nil)
				return
			}
			flusher.Flush()

		case <-ticker.C:
			// строки, начинающиеся с ':', браузер считает комментариями
			if _, err := fmt.Fprintf(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-h.notifier.Done():
			return

		case <-r.Context().Done():
			logger.Info("SSE client disconnected.", nil)
			return
		}
	}
}
