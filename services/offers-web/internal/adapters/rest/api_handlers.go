package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/rest_common"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/domain"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/port"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/store"
)

// APIHandler - JSON API для браузерных клиентов.
type APIHandler struct {
	store *store.Store
}

// ListOffers обрабатывает GET /api/v1/offers
func (h *APIHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	list, err := offersForRequest(r, h.store)
	if err != nil {
		rest_common.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	rest_common.RespondWithJSON(w, http.StatusOK, offerPageResponse{Data: list.Offers, Total: len(list.Offers)})
}

// GetOffer обрабатывает GET /api/v1/offers/{offerID}
func (h *APIHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := offerIDFromRequest(r)
	if err != nil {
		rest_common.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if offer, ok := h.store.Offer(offerID); ok {
		rest_common.RespondWithJSON(w, http.StatusOK, offer)
		return
	}

	offer, err := h.store.FetchOffer(r.Context(), offerID)
	if err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) {
			rest_common.WriteJSONError(w, http.StatusNotFound, "Offer not found")
			return
		}
		contextkeys.LoggerFromContext(r.Context()).Error("Failed to fetch offer", err, port.Fields{"offer_id": offerID})
		rest_common.WriteJSONError(w, http.StatusBadGateway, "Listing service is unavailable")
		return
	}
	rest_common.RespondWithJSON(w, http.StatusOK, offer)
}

// ListProperties обрабатывает GET /api/v1/properties
func (h *APIHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	rest_common.RespondWithJSON(w, http.StatusOK, propertyListResponse{Data: h.store.Properties()})
}

// ListOrderOptions обрабатывает GET /api/v1/order-options
func (h *APIHandler) ListOrderOptions(w http.ResponseWriter, r *http.Request) {
	rest_common.RespondWithJSON(w, http.StatusOK, orderByListResponse{Data: h.store.OrderOptions()})
}

// SetOrder обрабатывает PUT /api/v1/order - порядок по умолчанию для всех представлений.
func (h *APIHandler) SetOrder(w http.ResponseWriter, r *http.Request) {
	var req setOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest_common.WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.store.SetOrder(req.SortTitle, req.Descending); err != nil {
		rest_common.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, desc := h.store.CurrentOrder()
	rest_common.RespondWithJSON(w, http.StatusOK, setOrderRequest{SortTitle: order, Descending: desc})
}

// Refresh обрабатывает POST /api/v1/refresh - перезагрузка предложений с сервиса объявлений.
func (h *APIHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	if err := h.store.FetchOffers(r.Context()); err != nil {
		if errors.Is(err, store.ErrNoHTTPClient) {
			rest_common.WriteJSONError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		logger.Error("Refresh failed", err, nil)
		rest_common.WriteJSONError(w, http.StatusBadGateway, "Failed to refresh offers")
		return
	}

	rest_common.RespondWithJSON(w, http.StatusOK, refreshResponse{
		Status:      "ok",
		OffersCount: len(h.store.Snapshot().Offers),
	})
}
