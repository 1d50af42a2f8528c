package bootstrap

import (
	"fmt"
	"net/http"
)

// PluginKind - вид сквозной возможности приложения.
type PluginKind string

const (
	KindStore      PluginKind = "store"
	KindRouter     PluginKind = "router"
	KindHTTPClient PluginKind = "http_client"
)

// installOrder - единственный допустимый порядок подключения.
var installOrder = []PluginKind{KindStore, KindRouter, KindHTTPClient}

// InstallOrder возвращает копию порядка подключения.
func InstallOrder() []PluginKind {
	out := make([]PluginKind, len(installOrder))
	copy(out, installOrder)
	return out
}

func orderIndex(kind PluginKind) (int, error) {
	for i, k := range installOrder {
		if k == kind {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: '%s'", ErrUnknownPlugin, kind)
}

// Plugin подключается к приложению вызовом App.Use.
// Install обычно регистрирует плагин в Globals.
type Plugin interface {
	Kind() PluginKind
	Install(app *App) error
}

// Mountable реализует плагин маршрутизации: по рендереру оболочки
// он строит обработчик, который обслуживает смонтированное приложение.
type Mountable interface {
	Handler(renderer *Renderer) http.Handler
}
