package http

import (
	"encoding/json"
	"net/http"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/handler/http/response"
)

type PolicyHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type policyHandlerImpl struct {
	policyService penalty.PolicyService
}

func NewPolicyHandler(policyService penalty.PolicyService) PolicyHandler {
	return &policyHandlerImpl{
		policyService: policyService,
	}
}

// GetSettings implements PolicyHandler.
func (h *policyHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.policyService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}

// UpdateSettings implements PolicyHandler.
func (h *policyHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req penalty.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UpdatedBy = actorFromToken(r)

	settings, err := h.policyService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated", settings)
}
