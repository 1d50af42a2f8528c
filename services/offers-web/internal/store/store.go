// Package store - хранилище состояния приложения: загруженные предложения,
// варианты сортировки, текущий порядок и фильтр.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/pkg/logger"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/bootstrap"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/domain"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/port"
)

// ErrNoHTTPClient - действие требует HTTP-клиента, а он не подключен.
var ErrNoHTTPClient = errors.New("store: http client is not attached")

// Типы мутаций, которые получают подписчики.
const (
	MutationSetOffers   = "offers/set"
	MutationUpsertOffer = "offers/upsert"
	MutationRemoveOffer = "offers/remove"
	MutationSetOrder    = "order/set"
	MutationSetFilter   = "filter/set"
	MutationSetLoading  = "loading/set"
	MutationSetError    = "error/set"
)

// Mutation описывает одно изменение состояния.
type Mutation struct {
	Type    string `json:"type"`
	OfferID int64  `json:"offer_id,omitempty"`
}

// Listener вызывается после каждой мутации, вне блокировки хранилища.
type Listener func(m Mutation)

// State - снимок состояния.
type State struct {
	Offers       []contracts.Offer
	OrderOptions []contracts.OrderBy
	CurrentOrder string
	Descending   bool
	Filter       domain.OfferFilter
	Loading      bool
	LastError    string
	LastLoadedAt time.Time
}

type Store struct {
	mu    sync.RWMutex
	state State

	listenersMu sync.RWMutex
	listeners   map[int]Listener
	nextID      int

	globals *bootstrap.Globals
	listing port.ListingServicePort // задается напрямую, минуя Globals (тесты, утилиты)

	logger port.LoggerPort
}

// Option настраивает Store.
type Option func(*Store)

func WithLogger(l port.LoggerPort) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithListingService задает клиент явно. Без него клиент берется из Globals.
func WithListingService(l port.ListingServicePort) Option {
	return func(s *Store) {
		s.listing = l
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		state: State{
			OrderOptions: contracts.DefaultOrderOptions(),
			CurrentOrder: contracts.OrderByPrice,
		},
		listeners: make(map[int]Listener),
		logger:    logger.NoopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithFields(port.Fields{"component": "Store"})
	return s
}

// --- подписки ---

// Subscribe регистрирует слушателя мутаций. Возвращает функцию отписки.
func (s *Store) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) emit(m Mutation) {
	s.listenersMu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn(m)
	}
}

// --- мутации ---

// SetOffers заменяет список предложений. Срез копируется.
func (s *Store) SetOffers(offers []contracts.Offer) {
	cp := make([]contracts.Offer, len(offers))
	copy(cp, offers)

	s.mu.Lock()
	s.state.Offers = cp
	s.state.LastLoadedAt = time.Now()
	s.mu.Unlock()

	s.emit(Mutation{Type: MutationSetOffers})
}

// SetOrderOptions заменяет варианты сортировки. Ключи без локального
// компаратора отбрасываются; если не осталось ни одного, список не меняется.
func (s *Store) SetOrderOptions(options []contracts.OrderBy) {
	cp := make([]contracts.OrderBy, 0, len(options))
	for _, opt := range options {
		if !domain.IsSortable(opt.SortTitle) {
			s.logger.Warn("Skipping order option without local comparator", port.Fields{"order": opt.SortTitle})
			continue
		}
		cp = append(cp, opt)
	}
	if len(cp) == 0 {
		return
	}

	s.mu.Lock()
	s.state.OrderOptions = cp
	s.mu.Unlock()
}

// UpsertOffer добавляет предложение или заменяет существующее с тем же ID.
func (s *Store) UpsertOffer(offer contracts.Offer) {
	s.mu.Lock()
	replaced := false
	for i := range s.state.Offers {
		if s.state.Offers[i].ID == offer.ID {
			s.state.Offers[i] = offer
			replaced = true
			break
		}
	}
	if !replaced {
		s.state.Offers = append(s.state.Offers, offer)
	}
	s.mu.Unlock()

	s.emit(Mutation{Type: MutationUpsertOffer, OfferID: offer.ID})
}

// RemoveOffer удаляет предложение. Возвращает false, если его не было.
func (s *Store) RemoveOffer(offerID int64) bool {
	s.mu.Lock()
	removed := false
	for i := range s.state.Offers {
		if s.state.Offers[i].ID == offerID {
			s.state.Offers = append(s.state.Offers[:i], s.state.Offers[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.emit(Mutation{Type: MutationRemoveOffer, OfferID: offerID})
	}
	return removed
}

// SetOrder выбирает ключ сортировки из доступных вариантов.
func (s *Store) SetOrder(sortTitle string, desc bool) error {
	s.mu.Lock()
	known := false
	for _, opt := range s.state.OrderOptions {
		if opt.SortTitle == sortTitle {
			known = true
			break
		}
	}
	if !known || !domain.IsSortable(sortTitle) {
		s.mu.Unlock()
		return fmt.Errorf("%w: '%s'", domain.ErrUnknownOrder, sortTitle)
	}
	s.state.CurrentOrder = sortTitle
	s.state.Descending = desc
	s.mu.Unlock()

	s.emit(Mutation{Type: MutationSetOrder})
	return nil
}

func (s *Store) SetFilter(filter domain.OfferFilter) {
	s.mu.Lock()
	s.state.Filter = filter
	s.mu.Unlock()

	s.emit(Mutation{Type: MutationSetFilter})
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.state.Loading = loading
	s.mu.Unlock()

	s.emit(Mutation{Type: MutationSetLoading})
}

// SetError запоминает последнюю ошибку загрузки; nil сбрасывает ее.
func (s *Store) SetError(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}

	s.mu.Lock()
	s.state.LastError = msg
	s.mu.Unlock()

	s.emit(Mutation{Type: MutationSetError})
}

// --- геттеры ---

// Offers возвращает предложения с текущим фильтром и порядком.
func (s *Store) Offers() []contracts.Offer {
	s.mu.RLock()
	filtered := s.state.Filter.Apply(s.state.Offers)
	order, desc := s.state.CurrentOrder, s.state.Descending
	s.mu.RUnlock()

	sorted, err := domain.SortOffers(filtered, order, desc)
	if err != nil {
		// варианты сортировки пришли с сервера, локального компаратора может не быть
		s.logger.Warn("Falling back to unsorted offers", port.Fields{"order": order, "error": err.Error()})
		return filtered
	}
	return sorted
}

// Offer возвращает предложение по ID из уже загруженных.
func (s *Store) Offer(offerID int64) (contracts.Offer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.state.Offers {
		if o.ID == offerID {
			return o, true
		}
	}
	return contracts.Offer{}, false
}

// Properties возвращает объекты из всех предложений без повторов, по возрастанию ID.
// Для одного объекта берется снимок из предложения, встреченного первым.
func (s *Store) Properties() []contracts.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int64]struct{}, len(s.state.Offers))
	properties := make([]contracts.Property, 0, len(s.state.Offers))
	for _, o := range s.state.Offers {
		if _, ok := seen[o.Property.ID]; ok {
			continue
		}
		seen[o.Property.ID] = struct{}{}
		properties = append(properties, o.Property)
	}

	sort.Slice(properties, func(i, j int) bool { return properties[i].ID < properties[j].ID })
	return properties
}

func (s *Store) OrderOptions() []contracts.OrderBy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]contracts.OrderBy, len(s.state.OrderOptions))
	copy(cp, s.state.OrderOptions)
	return cp
}

// CurrentOrder возвращает ключ сортировки и направление.
func (s *Store) CurrentOrder() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentOrder, s.state.Descending
}

// Snapshot возвращает копию всего состояния.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	st.Offers = make([]contracts.Offer, len(s.state.Offers))
	copy(st.Offers, s.state.Offers)
	st.OrderOptions = make([]contracts.OrderBy, len(s.state.OrderOptions))
	copy(st.OrderOptions, s.state.OrderOptions)
	return st
}

// --- действия ---

func (s *Store) listingService() (port.ListingServicePort, error) {
	if s.listing != nil {
		return s.listing, nil
	}
	s.mu.RLock()
	globals := s.globals
	s.mu.RUnlock()

	if globals == nil {
		return nil, ErrNoHTTPClient
	}
	v, ok := globals.Lookup(bootstrap.KindHTTPClient)
	if !ok {
		return nil, ErrNoHTTPClient
	}
	client, ok := v.(port.ListingServicePort)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected type %T", ErrNoHTTPClient, v)
	}
	return client, nil
}

// FetchOffers загружает предложения и варианты сортировки с сервиса объявлений.
// Ошибка загрузки вариантов сортировки не прерывает действие.
func (s *Store) FetchOffers(ctx context.Context) error {
	actionLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "Store",
		"action":    "FetchOffers",
	})

	listing, err := s.listingService()
	if err != nil {
		return err
	}

	s.SetLoading(true)
	defer s.SetLoading(false)

	offers, err := listing.ListOffers(ctx)
	if err != nil {
		actionLogger.Error("Failed to fetch offers", err, nil)
		s.SetError(err)
		return fmt.Errorf("store: failed to fetch offers: %w", err)
	}

	options, err := listing.ListOrderOptions(ctx)
	if err != nil {
		actionLogger.Warn("Failed to fetch order options, keeping current ones", port.Fields{"error": err.Error()})
	} else {
		s.SetOrderOptions(options)
	}

	s.SetOffers(offers)
	s.SetError(nil)
	actionLogger.Info("Offers loaded", port.Fields{"offers_count": len(offers)})
	return nil
}

// FetchOffer загружает одно предложение и кладет его в хранилище.
func (s *Store) FetchOffer(ctx context.Context, offerID int64) (contracts.Offer, error) {
	listing, err := s.listingService()
	if err != nil {
		return contracts.Offer{}, err
	}

	offer, err := listing.GetOffer(ctx, offerID)
	if err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) {
			s.RemoveOffer(offerID)
		}
		return contracts.Offer{}, err
	}

	s.UpsertOffer(offer)
	return offer, nil
}
