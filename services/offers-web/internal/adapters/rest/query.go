package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/pkg/rest_common"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/domain"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/store"
)

// listView - предложения для одного запроса. Параметры запроса
// перекрывают порядок и фильтр хранилища, но не меняют их.
type listView struct {
	Offers     []contracts.Offer
	Order      string
	Descending bool
}

func filterFromRequest(r *http.Request, fallback domain.OfferFilter) domain.OfferFilter {
	q := r.URL.Query()
	f := domain.OfferFilter{
		Kind:        rest_common.ParseString(q, "kind"),
		MinPrice:    rest_common.ParseFloat(q, "minPrice"),
		MaxPrice:    rest_common.ParseFloat(q, "maxPrice"),
		MinBedrooms: rest_common.ParseInt(q, "minBedrooms"),
	}
	if f.IsEmpty() {
		return fallback
	}
	return f
}

func offersForRequest(r *http.Request, st *store.Store) (listView, error) {
	snap := st.Snapshot()

	order, desc := snap.CurrentOrder, snap.Descending
	q := r.URL.Query()
	if requested := q.Get("order"); requested != "" {
		order = requested
		desc = rest_common.ParseBool(q, "desc")
	}

	filtered := filterFromRequest(r, snap.Filter).Apply(snap.Offers)
	sorted, err := domain.SortOffers(filtered, order, desc)
	if err != nil {
		return listView{}, err
	}
	return listView{Offers: sorted, Order: order, Descending: desc}, nil
}

func offerIDFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "offerID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidOfferID
	}
	return id, nil
}
