package rest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/pkg/logger"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/adapters/listing_client"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/bootstrap"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/store"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/views"
)

// fakeListingService отвечает как listing-service.
type fakeListingService struct {
	mu     sync.Mutex
	offers []contracts.Offer
}

func (f *fakeListingService) setOffers(offers []contracts.Offer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offers = offers
}

func (f *fakeListingService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/api/v1/offers":
		_ = json.NewEncoder(w).Encode(offerPageResponse{Data: f.offers, Total: len(f.offers)})
	case r.URL.Path == "/api/v1/order-options":
		_ = json.NewEncoder(w).Encode(orderByListResponse{Data: contracts.DefaultOrderOptions()})
	case strings.HasPrefix(r.URL.Path, "/api/v1/offers/"):
		for _, o := range f.offers {
			if r.URL.Path == fmt.Sprintf("/api/v1/offers/%d", o.ID) {
				_ = json.NewEncoder(w).Encode(o)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"offer not found"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func testOffers() []contracts.Offer {
	return []contracts.Offer{
		{ID: 1, OfferedBy: "Alice", Price: 250000, Property: contracts.Property{ID: 10, Kind: "house", Location: "Springfield", Bedrooms: 3, Area: 120}},
		{ID: 2, OfferedBy: "Bob", Price: 90000, Property: contracts.Property{ID: 11, Kind: "flat", Location: "Ashford", Bedrooms: 1, Area: 40}},
		{ID: 3, OfferedBy: "Carol", Price: 180000, Property: contracts.Property{ID: 10, Kind: "house", Location: "Springfield", Bedrooms: 3, Area: 120}},
	}
}

type testEnv struct {
	app     *bootstrap.App
	store   *store.Store
	listing *fakeListingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	listing := &fakeListingService{offers: testOffers()}
	srv := httptest.NewServer(listing)
	t.Cleanup(srv.Close)

	root, err := views.Root()
	require.NoError(t, err)

	st := store.New()
	app := bootstrap.CreateApp(root, bootstrap.WithHostConfig(bootstrap.HostConfig{Addr: "127.0.0.1:0"})).
		Use(st).
		Use(NewRouter(RouterConfig{KeepAliveInterval: time.Second}, logger.NoopLogger{})).
		Use(listing_client.NewListingServiceAPIClient(srv.URL, 2*time.Second))
	require.NoError(t, app.Mount(context.Background(), "#app"))
	t.Cleanup(func() { _ = app.Unmount(context.Background()) })

	require.NoError(t, st.FetchOffers(context.Background()))
	return &testEnv{app: app, store: st, listing: listing}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.app.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeOfferIDs(t *testing.T, rec *httptest.ResponseRecorder) []int64 {
	t.Helper()
	var page offerPageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, len(page.Data), page.Total)

	ids := make([]int64, 0, len(page.Data))
	for _, o := range page.Data {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestOffersPageIsRenderedIntoMountTarget(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	page := rec.Body.String()
	assert.Contains(t, page, `<main id="app">`)
	assert.Contains(t, page, "<title>Offers</title>")
	assert.Contains(t, page, "house in Springfield")
	assert.Contains(t, page, "250,000")
	assert.Contains(t, page, "Living Area")
}

func TestOfferPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/offers/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bob")

	rec = env.do(t, http.MethodGet, "/offers/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Offer 99 not found")

	rec = env.do(t, http.MethodGet, "/offers/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPropertiesPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/properties", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ashford")
}

func TestUnknownPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `<main id="app">`)
}

func TestListOffersAPI(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/offers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{2, 3, 1}, decodeOfferIDs(t, rec), "default order is price ascending")
	assert.NoError(t, contracts.ValidateJSON(contracts.ContractOfferPage, contracts.V1, rec.Body.Bytes()))

	rec = env.do(t, http.MethodGet, "/api/v1/offers?order=price&desc=true&kind=house", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{1, 3}, decodeOfferIDs(t, rec))

	rec = env.do(t, http.MethodGet, "/api/v1/offers?order=color", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOfferAPI(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/offers/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	offer, err := contracts.DecodeOffer(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Alice", offer.OfferedBy)

	rec = env.do(t, http.MethodGet, "/api/v1/offers/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/offers/-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOfferAPIFetchesUnknownOffer(t *testing.T) {
	env := newTestEnv(t)

	extra := contracts.Offer{ID: 7, OfferedBy: "Dave", Price: 1, Property: contracts.Property{ID: 20, Kind: "plot", Location: "Ely", Area: 500}}
	env.listing.setOffers(append(testOffers(), extra))

	rec := env.do(t, http.MethodGet, "/api/v1/offers/7", "")
	require.Equal(t, http.StatusOK, rec.Code)

	_, ok := env.store.Offer(7)
	assert.True(t, ok, "fetched offer is kept in the store")
}

func TestPropertiesAndOrderOptionsAPI(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/properties", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, contracts.ValidateJSON(contracts.ContractPropertyList, contracts.V1, rec.Body.Bytes()))
	var props propertyListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &props))
	assert.Len(t, props.Data, 2)

	rec = env.do(t, http.MethodGet, "/api/v1/order-options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, contracts.ValidateJSON(contracts.ContractOrderByList, contracts.V1, rec.Body.Bytes()))
}

func TestSetOrderAPI(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/v1/order", `{"sortTitle":"id","desc":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/offers", "")
	assert.Equal(t, []int64{3, 2, 1}, decodeOfferIDs(t, rec))

	rec = env.do(t, http.MethodPut, "/api/v1/order", `{"sortTitle":"color"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/order", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshAPI(t *testing.T) {
	env := newTestEnv(t)
	env.listing.setOffers(testOffers()[:1])

	rec := env.do(t, http.MethodPost, "/api/v1/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp refreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.OffersCount)
	assert.Len(t, env.store.Offers(), 1)
}

func TestHealthzAndTraceHeader(t *testing.T) {
	env := newTestEnv(t)

	traceID := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(contextkeys.TraceHeader, traceID)
	rec := httptest.NewRecorder()
	env.app.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, traceID, rec.Header().Get(contextkeys.TraceHeader))
}

func TestEventsStreamStoreMutations(t *testing.T) {
	env := newTestEnv(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+env.app.Host().Addr()+"/api/v1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	reader := bufio.NewReader(resp.Body)

	readEvent := func() string {
		var sb strings.Builder
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if line == "\n" {
				return sb.String()
			}
			if strings.HasPrefix(line, ":") {
				continue
			}
			sb.WriteString(line)
		}
	}

	assert.Contains(t, readEvent(), "event: connected")

	env.store.RemoveOffer(2)

	// до подписки могло прийти событие загрузки списка, пропускаем его
	var event string
	for i := 0; i < 3 && !strings.Contains(event, "offers/remove"); i++ {
		event = readEvent()
	}
	assert.Contains(t, event, "event: offers")
	assert.Contains(t, event, `"type":"offers/remove"`)
	assert.Contains(t, event, `"offer_id":2`)
}

func TestRouterRequiresStore(t *testing.T) {
	root, err := views.Root()
	require.NoError(t, err)
	app := bootstrap.CreateApp(root)

	err = NewRouter(RouterConfig{}, logger.NoopLogger{}).Install(app)
	assert.ErrorIs(t, err, bootstrap.ErrMissingCapability)
}
