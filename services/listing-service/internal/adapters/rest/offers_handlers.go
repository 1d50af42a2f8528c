package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/pkg/rest_common"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/domain"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port/usecases_port"
)

// максимальный размер тела POST /api/v1/offers
const maxOfferBodyBytes = 1 << 20

type OffersHandler struct {
	listOffersUC    usecases_port.ListOffersUseCase
	getOfferUC      usecases_port.GetOfferUseCase
	publishOfferUC  usecases_port.PublishOfferUseCase
	withdrawOfferUC usecases_port.WithdrawOfferUseCase
}

func NewOffersHandler(listOffersUC usecases_port.ListOffersUseCase,
	getOfferUC usecases_port.GetOfferUseCase,
	publishOfferUC usecases_port.PublishOfferUseCase,
	withdrawOfferUC usecases_port.WithdrawOfferUseCase) *OffersHandler {
	return &OffersHandler{
		listOffersUC:    listOffersUC,
		getOfferUC:      getOfferUC,
		publishOfferUC:  publishOfferUC,
		withdrawOfferUC: withdrawOfferUC,
	}
}

// ListOffers обрабатывает GET /api/v1/offers
func (h *OffersHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(query.Get("perPage"))
	switch {
	case perPage < 1:
		perPage = domain.DefaultPerPage
	case perPage > domain.MaxPerPage:
		perPage = domain.MaxPerPage
	}

	listQuery := domain.ListOffersQuery{
		Filter: domain.OfferFilter{
			Kind:        rest_common.ParseString(query, "kind"),
			MinPrice:    rest_common.ParseFloat(query, "minPrice"),
			MaxPrice:    rest_common.ParseFloat(query, "maxPrice"),
			MinBedrooms: rest_common.ParseInt(query, "minBedrooms"),
		},
		Order:      query.Get("order"),
		Descending: rest_common.ParseBool(query, "desc"),
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	}

	result, err := h.listOffersUC.Execute(r.Context(), listQuery)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownOrder) {
			rest_common.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("ListOffers use case failed", err, nil)
		rest_common.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	offers := result.Offers
	if offers == nil {
		offers = []contracts.Offer{}
	}
	rest_common.RespondWithJSON(w, http.StatusOK, OfferPageResponse{
		Data:    offers,
		Total:   result.Total,
		Page:    page,
		PerPage: perPage,
	})
}

// GetOffer обрабатывает GET /api/v1/offers/{offerID}
func (h *OffersHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	offerID, ok := parseOfferID(w, r)
	if !ok {
		return
	}

	offer, err := h.getOfferUC.Execute(r.Context(), offerID)
	if err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) {
			rest_common.WriteJSONError(w, http.StatusNotFound, "Offer not found")
			return
		}
		logger.Error("GetOffer use case failed", err, port.Fields{"offer_id": offerID})
		rest_common.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	rest_common.RespondWithJSON(w, http.StatusOK, offer)
}

// CreateOffer обрабатывает POST /api/v1/offers; тело проверяется по контракту Offer.
func (h *OffersHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxOfferBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			rest_common.WriteJSONError(w, http.StatusRequestEntityTooLarge, "Request body is too large")
			return
		}
		logger.Warn("Failed to read offer body", port.Fields{"error": err.Error()})
		rest_common.WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	offer, err := contracts.DecodeOffer(body)
	if err != nil {
		logger.Warn("Offer body rejected", port.Fields{"error": err.Error()})
		rest_common.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.publishOfferUC.Execute(r.Context(), offer); err != nil {
		switch {
		case errors.Is(err, contracts.ErrInvalidOffer):
			rest_common.WriteJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrOfferExists):
			rest_common.WriteJSONError(w, http.StatusConflict, err.Error())
		default:
			logger.Error("PublishOffer use case failed", err, port.Fields{"offer_id": offer.ID})
			rest_common.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	w.Header().Set("Location", "/api/v1/offers/"+strconv.FormatInt(offer.ID, 10))
	rest_common.RespondWithJSON(w, http.StatusCreated, offer)
}

// DeleteOffer обрабатывает DELETE /api/v1/offers/{offerID}
func (h *OffersHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	offerID, ok := parseOfferID(w, r)
	if !ok {
		return
	}

	if err := h.withdrawOfferUC.Execute(r.Context(), offerID); err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) {
			rest_common.WriteJSONError(w, http.StatusNotFound, "Offer not found")
			return
		}
		logger.Error("WithdrawOffer use case failed", err, port.Fields{"offer_id": offerID})
		rest_common.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOrderOptions обрабатывает GET /api/v1/order-options
func (h *OffersHandler) ListOrderOptions(w http.ResponseWriter, r *http.Request) {
	rest_common.RespondWithJSON(w, http.StatusOK, OrderByListResponse{Data: contracts.DefaultOrderOptions()})
}

func parseOfferID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	offerID, err := strconv.ParseInt(chi.URLParam(r, "offerID"), 10, 64)
	if err != nil || offerID <= 0 {
		rest_common.WriteJSONError(w, http.StatusBadRequest, "Invalid offer ID format")
		return 0, false
	}
	return offerID, true
}
