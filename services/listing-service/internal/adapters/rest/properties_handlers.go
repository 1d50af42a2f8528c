package rest

import (
	"net/http"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/pkg/rest_common"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port/usecases_port"
)

type PropertiesHandler struct {
	listPropertiesUC usecases_port.ListPropertiesUseCase
}

func NewPropertiesHandler(listPropertiesUC usecases_port.ListPropertiesUseCase) *PropertiesHandler {
	return &PropertiesHandler{listPropertiesUC: listPropertiesUC}
}

// ListProperties обрабатывает GET /api/v1/properties
func (h *PropertiesHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.listPropertiesUC.Execute(r.Context())
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("ListProperties use case failed", err, nil)
		rest_common.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if properties == nil {
		properties = []contracts.Property{}
	}
	rest_common.RespondWithJSON(w, http.StatusOK, PropertyListResponse{Data: properties})
}
