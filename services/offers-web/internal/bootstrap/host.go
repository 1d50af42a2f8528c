package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/port"
)

// HostConfig - параметры HTTP-сервера, в который монтируется приложение.
type HostConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
}

// Host - HTTP-сервер смонтированного приложения.
type Host struct {
	httpServer *http.Server
	listener   net.Listener
	done       chan error
	logger     port.LoggerPort
}

func newHost(cfg HostConfig, handler http.Handler, logger port.LoggerPort) *Host {
	return &Host{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		done:   make(chan error, 1),
		logger: logger,
	}
}

// start занимает адрес синхронно, а обслуживает запросы в отдельной горутине.
func (h *Host) start() error {
	ln, err := net.Listen("tcp", h.httpServer.Addr)
	if err != nil {
		return err
	}
	h.listener = ln

	go func() {
		h.logger.Info("Starting HTTP host", port.Fields{"address": ln.Addr().String()})
		err := h.httpServer.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		h.done <- err
		close(h.done)
	}()
	return nil
}

// Addr возвращает фактический адрес (полезно при ":0").
func (h *Host) Addr() string {
	if h.listener == nil {
		return h.httpServer.Addr
	}
	return h.listener.Addr().String()
}

// Done закрывается после остановки сервера; ошибка не nil, если сервер упал.
func (h *Host) Done() <-chan error {
	return h.done
}

func (h *Host) stop(ctx context.Context) error {
	h.logger.Info("Stopping HTTP host...", nil)
	return h.httpServer.Shutdown(ctx)
}
