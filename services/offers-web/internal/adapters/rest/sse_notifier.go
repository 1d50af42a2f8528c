package rest

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/port"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/store"
)

// sseEventOffers - имя SSE-события, по которому страница перезагружается.
const sseEventOffers = "offers"

// clientChannel - канал событий одного подключенного браузера
type clientChannel chan []byte

// SSENotifier рассылает изменения списка предложений всем SSE-клиентам.
type SSENotifier struct {
	clients map[clientChannel]struct{}
	mu      sync.RWMutex

	eventChan chan store.Mutation
	done      chan struct{}
	closeOnce sync.Once

	logger port.LoggerPort
}

func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	n := &SSENotifier{
		clients:   make(map[clientChannel]struct{}),
		eventChan: make(chan store.Mutation, 100),
		done:      make(chan struct{}),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}

	go n.dispatcher()
	return n
}

func (n *SSENotifier) dispatcher() {
	n.logger.Debug("Notifier dispatcher started.", nil)
	for {
		select {
		case <-n.done:
			n.logger.Debug("Notifier dispatcher stopped.", nil)
			return
		case m := <-n.eventChan:
			n.broadcast(m)
		}
	}
}

func (n *SSENotifier) broadcast(m store.Mutation) {
	payload, err := json.Marshal(m)
	if err != nil {
		n.logger.Error("Failed to marshal event", err, nil)
		return
	}
	message := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", sseEventOffers, payload))

	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.clients {
		// медленный клиент не должен задерживать остальных
		select {
		case ch <- message:
		default:
			n.logger.Warn("Client channel is full, skipping.", port.Fields{"mutation": m.Type})
		}
	}
}

// Notify подписан на мутации хранилища. Рассылаются только изменения
// списка предложений. Вызов не блокируется.
func (n *SSENotifier) Notify(m store.Mutation) {
	if !strings.HasPrefix(m.Type, "offers/") {
		return
	}
	select {
	case <-n.done:
	case n.eventChan <- m:
	default:
		n.logger.Warn("Notifier queue is full, event dropped.", port.Fields{"mutation": m.Type})
	}
}

// AddClient регистрирует новое SSE-соединение.
func (n *SSENotifier) AddClient() clientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(clientChannel, 16)
	n.clients[ch] = struct{}{}
	n.logger.Debug("Client connected", port.Fields{"total_connections": len(n.clients)})
	return ch
}

// RemoveClient вызывается обработчиком, когда клиент отключился.
func (n *SSENotifier) RemoveClient(ch clientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.clients, ch)
	n.logger.Debug("Client disconnected", port.Fields{"remaining_connections": len(n.clients)})
}

// ClientsCount возвращает число подключенных клиентов.
func (n *SSENotifier) ClientsCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.clients)
}

// Done закрывается при остановке рассылки.
func (n *SSENotifier) Done() <-chan struct{} {
	return n.done
}

func (n *SSENotifier) Close() {
	n.closeOnce.Do(func() { close(n.done) })
}
