package listing_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/domain"
)

const aliceOffer = `{"id":1,"offered_by":"Alice","price":250000,"property":{"id":10,"kind":"house","location":"Springfield","bedrooms":3,"area":120}}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *ListingServiceAPIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewListingServiceAPIClient(srv.URL+"/", 2*time.Second)
}

func TestListOffers(t *testing.T) {
	var gotTrace, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotTrace = r.Header.Get(contextkeys.TraceHeader)
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[` + aliceOffer + `],"total":1}`))
	})

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
	offers, err := client.ListOffers(ctx)
	require.NoError(t, err)

	require.Len(t, offers, 1)
	assert.Equal(t, 250000.0, offers[0].Price)
	assert.Equal(t, 3, offers[0].Property.Bedrooms)
	assert.Equal(t, "trace-1", gotTrace)
	assert.Equal(t, "/api/v1/offers", gotPath)
}

func TestListOffersFollowsPages(t *testing.T) {
	const total = 250
	var requested []string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		requested = append(requested, q.Get("page"))
		page, _ := strconv.Atoi(q.Get("page"))
		perPage, _ := strconv.Atoi(q.Get("perPage"))
		assert.Equal(t, contracts.OrderByID, q.Get("order"))

		data := []contracts.Offer{}
		for id := (page-1)*perPage + 1; id <= page*perPage && id <= total; id++ {
			data = append(data, contracts.Offer{
				ID: int64(id), OfferedBy: "Alice", Price: float64(id),
				Property: contracts.Property{ID: int64(id), Kind: "flat", Location: fmt.Sprintf("street %d", id), Bedrooms: 1, Area: 40},
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data, "total": total})
	})

	offers, err := client.ListOffers(context.Background())
	require.NoError(t, err)

	require.Len(t, offers, total)
	assert.Equal(t, int64(1), offers[0].ID)
	assert.Equal(t, int64(total), offers[total-1].ID)
	assert.Equal(t, []string{"1", "2"}, requested)
}

func TestListOffersStopsWhenServerIgnoresPaging(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		// total больше, чем сервер реально отдает
		_, _ = w.Write([]byte(`{"data":[` + aliceOffer + `],"total":5}`))
	})

	offers, err := client.ListOffers(context.Background())
	require.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.LessOrEqual(t, calls, 5)
}

func TestListOffersRejectsContractViolation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":1,"offered_by":"Alice","price":-5,"property":{"id":10,"kind":"house","location":"x","bedrooms":3,"area":120}}],"total":1}`))
	})

	_, err := client.ListOffers(context.Background())
	assert.ErrorIs(t, err, contracts.ErrContractViolation)
}

func TestGetOffer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/offers/1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"offer not found"}`))
			return
		}
		_, _ = w.Write([]byte(aliceOffer))
	})

	offer, err := client.GetOffer(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", offer.OfferedBy)
	assert.Equal(t, int64(10), offer.Property.ID)

	_, err = client.GetOffer(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrOfferNotFound)
}

func TestServerErrorIncludesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"database is down"}`))
	})

	_, err := client.ListOrderOptions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "database is down")
	assert.NotErrorIs(t, err, domain.ErrOfferNotFound)
}

func TestListOrderOptions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"sortTitle":"price","title":"Price"}]}`))
	})

	options, err := client.ListOrderOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []contracts.OrderBy{{SortTitle: "price", Title: "Price"}}, options)
}

func TestListNotFoundIsNotOfferNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.ListOffers(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrOfferNotFound)
}
