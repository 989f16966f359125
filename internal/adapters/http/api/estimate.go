package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/auditplan/internal/domain/model"
)

// maxBodyBytes bounds POST /estimate bodies.
const maxBodyBytes = 1 << 16

// EstimateDependencies defines the interface for estimation.
type EstimateDependencies interface {
	Estimate(ctx context.Context, req model.RawRequest) (model.Result, error)
}

// EstimateHandler handles estimation requests.
type EstimateHandler struct {
	deps EstimateDependencies
}

// NewEstimateHandler creates a new estimate handler.
func NewEstimateHandler(deps EstimateDependencies) *EstimateHandler {
	return &EstimateHandler{deps: deps}
}

// HandlePostEstimate handles POST /estimate requests.
func (h *EstimateHandler) HandlePostEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	var req model.RawRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	res, err := h.deps.Estimate(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}
