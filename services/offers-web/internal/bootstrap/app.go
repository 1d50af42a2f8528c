// Package bootstrap собирает приложение: корень из представления верхнего
// уровня, подключение хранилища, маршрутизатора и HTTP-клиента в строгом
// порядке и монтирование на элемент оболочки.
//
//	app := bootstrap.CreateApp(root).Use(st).Use(router).Use(client)
//	err := app.Mount(ctx, "#app")
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/yuriynekrasov/hizzle/pkg/logger"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/port"
)

// Option настраивает App при создании.
type Option func(*App)

func WithLogger(l port.LoggerPort) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

func WithHostConfig(cfg HostConfig) Option {
	return func(a *App) {
		a.hostCfg = cfg
	}
}

// App - корень приложения.
type App struct {
	mu sync.Mutex

	root    RootView
	globals *Globals
	plugins []Plugin
	err     error // первая ошибка Use, возвращается из Mount

	hostCfg HostConfig
	host    *Host
	handler http.Handler
	mounted bool
	// плагины после Unmount закрыты, повторно смонтировать App нельзя
	unmounted bool

	logger port.LoggerPort
}

// CreateApp создает корень приложения из представления верхнего уровня.
func CreateApp(root RootView, opts ...Option) *App {
	a := &App{
		root:    root,
		globals: newGlobals(),
		hostCfg: HostConfig{Addr: ":8080"},
		logger:  logger.NoopLogger{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.WithFields(port.Fields{"component": "bootstrap", "root_view": root.Name})
	return a
}

// Use подключает возможность. Цепочка вызовов прерывается на первой ошибке:
// последующие Use ничего не делают, а ошибку вернет Mount (или Err).
func (a *App) Use(p Plugin) *App {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.err != nil {
		return a
	}
	if err := a.install(p); err != nil {
		a.logger.Error("Failed to attach plugin", err, nil)
		a.err = err
	}
	return a
}

func (a *App) install(p Plugin) error {
	if a.mounted || a.unmounted {
		return ErrAlreadyMounted
	}
	if p == nil {
		return fmt.Errorf("bootstrap: nil plugin")
	}

	kind := p.Kind()
	idx, err := orderIndex(kind)
	if err != nil {
		return err
	}

	for _, installed := range a.plugins {
		if installed.Kind() == kind {
			return fmt.Errorf("%w: '%s'", ErrAlreadyInstalled, kind)
		}
	}

	if idx != len(a.plugins) {
		return fmt.Errorf("%w: '%s' attached while '%s' is expected", ErrPluginOrder, kind, installOrder[len(a.plugins)])
	}

	if err := p.Install(a); err != nil {
		return fmt.Errorf("bootstrap: failed to install '%s': %w", kind, err)
	}

	a.plugins = append(a.plugins, p)
	a.logger.Debug("Plugin attached", port.Fields{"plugin": string(kind)})
	return nil
}

// Mount монтирует приложение на элемент оболочки и запускает HTTP-сервер.
// Если чего-то не хватает, ничего не запускается.
func (a *App) Mount(ctx context.Context, selector string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.err != nil {
		return a.err
	}
	if a.mounted || a.unmounted {
		return ErrAlreadyMounted
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, kind := range installOrder {
		if i >= len(a.plugins) {
			return fmt.Errorf("%w: '%s'", ErrMissingCapability, kind)
		}
	}

	renderer, err := NewRenderer(a.root.Shell, selector)
	if err != nil {
		return err
	}

	routerValue, _ := a.globals.Lookup(KindRouter)
	mountable, ok := routerValue.(Mountable)
	if !ok {
		return fmt.Errorf("%w: router does not provide a handler", ErrMissingCapability)
	}

	handler := mountable.Handler(renderer)
	host := newHost(a.hostCfg, handler, a.logger)
	if err := host.start(); err != nil {
		return fmt.Errorf("bootstrap: failed to start host: %w", err)
	}

	a.handler = handler
	a.host = host
	a.mounted = true
	a.logger.Info("Application mounted", port.Fields{"selector": selector, "address": host.Addr()})
	return nil
}

// Unmount закрывает плагины в обратном порядке (это завершает и долгие
// SSE-соединения), затем останавливает HTTP-сервер.
func (a *App) Unmount(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.mounted {
		return ErrNotMounted
	}

	var errs []error
	for i := len(a.plugins) - 1; i >= 0; i-- {
		closer, ok := a.plugins[i].(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.plugins[i].Kind(), err))
		}
	}

	if err := a.host.stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("host: %w", err))
	}

	a.mounted = false
	a.unmounted = true
	a.logger.Info("Application unmounted", nil)
	return errors.Join(errs...)
}

// Globals возвращает реестр возможностей.
func (a *App) Globals() *Globals {
	return a.globals
}

func (a *App) RootView() RootView {
	return a.root
}

// Err возвращает первую ошибку Use.
func (a *App) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

func (a *App) Mounted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mounted
}

// Installed возвращает виды подключенных возможностей в порядке подключения.
func (a *App) Installed() []PluginKind {
	a.mu.Lock()
	defer a.mu.Unlock()

	kinds := make([]PluginKind, 0, len(a.plugins))
	for _, p := range a.plugins {
		kinds = append(kinds, p.Kind())
	}
	return kinds
}

// Host возвращает HTTP-сервер смонтированного приложения или nil.
func (a *App) Host() *Host {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.host
}

// Handler возвращает обработчик смонтированного приложения или nil.
func (a *App) Handler() http.Handler {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.handler
}
