package bootstrap

import (
	"fmt"
	"sync"
)

// Globals - явный реестр подключенных возможностей. Передается во все
// представления вместо глобальных переменных.
type Globals struct {
	mu     sync.RWMutex
	values map[PluginKind]interface{}
}

func newGlobals() *Globals {
	return &Globals{values: make(map[PluginKind]interface{})}
}

// Provide регистрирует возможность. Повторная регистрация того же вида запрещена.
func (g *Globals) Provide(kind PluginKind, value interface{}) error {
	if value == nil {
		return fmt.Errorf("bootstrap: nil value for '%s'", kind)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.values[kind]; exists {
		return fmt.Errorf("%w: '%s'", ErrAlreadyInstalled, kind)
	}
	g.values[kind] = value
	return nil
}

// Lookup возвращает зарегистрированную возможность.
func (g *Globals) Lookup(kind PluginKind) (interface{}, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v, ok := g.values[kind]
	return v, ok
}

// Has сообщает, зарегистрирована ли возможность.
func (g *Globals) Has(kind PluginKind) bool {
	_, ok := g.Lookup(kind)
	return ok
}
