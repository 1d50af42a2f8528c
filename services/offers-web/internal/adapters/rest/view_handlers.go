package rest

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/bootstrap"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/domain"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/port"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/store"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/views"
)

// ViewHandler отдает HTML-страницы, встроенные в элемент монтирования оболочки.
type ViewHandler struct {
	store    *store.Store
	pages    *template.Template
	renderer *bootstrap.Renderer
}

func (h *ViewHandler) render(w http.ResponseWriter, r *http.Request, status int, title, page string, data interface{}) {
	logger := contextkeys.LoggerFromContext(r.Context())

	content, err := views.RenderPage(h.pages, page, data)
	if err != nil {
		logger.Error("Failed to render page", err, port.Fields{"page": page})
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Render(w, title, content); err != nil {
		logger.Error("Failed to write page", err, port.Fields{"page": page})
	}
}

func (h *ViewHandler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, http.StatusText(status), views.PageError, errorPageData{Status: status, Message: message})
}

// OffersPage обрабатывает GET /
func (h *ViewHandler) OffersPage(w http.ResponseWriter, r *http.Request) {
	list, err := offersForRequest(r, h.store)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	snap := h.store.Snapshot()
	h.render(w, r, http.StatusOK, "Offers", views.PageOffers, offersPageData{
		Offers:       list.Offers,
		OrderOptions: snap.OrderOptions,
		CurrentOrder: list.Order,
		Descending:   list.Descending,
		Error:        snap.LastError,
	})
}

// OfferPage обрабатывает GET /offers/{offerID}
func (h *ViewHandler) OfferPage(w http.ResponseWriter, r *http.Request) {
	offerID, err := offerIDFromRequest(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	offer, ok := h.store.Offer(offerID)
	if !ok {
		offer, err = h.store.FetchOffer(r.Context(), offerID)
		switch {
		case errors.Is(err, domain.ErrOfferNotFound):
			h.renderError(w, r, http.StatusNotFound, fmt.Sprintf("Offer %d not found", offerID))
			return
		case err != nil:
			contextkeys.LoggerFromContext(r.Context()).Error("Failed to fetch offer", err, port.Fields{"offer_id": offerID})
			h.renderError(w, r, http.StatusBadGateway, "Listing service is unavailable")
			return
		}
	}

	title := fmt.Sprintf("%s in %s", offer.Property.Kind, offer.Property.Location)
	h.render(w, r, http.StatusOK, title, views.PageOffer, offer)
}

// PropertiesPage обрабатывает GET /properties
func (h *ViewHandler) PropertiesPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "Properties", views.PageProperties, h.store.Properties())
}

func (h *ViewHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Page not found")
}
