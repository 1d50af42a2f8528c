package store

import (
	"fmt"

	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/bootstrap"
)

func (s *Store) Kind() bootstrap.PluginKind {
	return bootstrap.KindStore
}

// Install регистрирует хранилище в Globals. Хранилище подключается
// только к одному приложению и только один раз.
func (s *Store) Install(app *bootstrap.App) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.globals != nil {
		return fmt.Errorf("%w: store", bootstrap.ErrAlreadyInstalled)
	}
	if err := app.Globals().Provide(bootstrap.KindStore, s); err != nil {
		return err
	}
	s.globals = app.Globals()
	return nil
}

// FromGlobals возвращает подключенное хранилище.
func FromGlobals(g *bootstrap.Globals) (*Store, error) {
	v, ok := g.Lookup(bootstrap.KindStore)
	if !ok {
		return nil, fmt.Errorf("%w: store", bootstrap.ErrMissingCapability)
	}
	s, ok := v.(*Store)
	if !ok {
		return nil, fmt.Errorf("%w: store has unexpected type %T", bootstrap.ErrMissingCapability, v)
	}
	return s, nil
}
