package api

import (
	"context"
	"net/http"

	"github.com/okian/auditplan/internal/domain/model"
)

// ReferenceDependencies exposes the loaded snapshot and fitted model.
type ReferenceDependencies interface {
	Summary(ctx context.Context) model.ReferenceSummary
	Model(ctx context.Context) model.ModelSummary
}

// ReferenceHandler serves read-only views of the reference data.
type ReferenceHandler struct {
	deps ReferenceDependencies
}

// NewReferenceHandler creates a new reference handler.
func NewReferenceHandler(deps ReferenceDependencies) *ReferenceHandler {
	return &ReferenceHandler{deps: deps}
}

// HandleGetReference handles GET /reference requests.
func (h *ReferenceHandler) HandleGetReference(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, r, http.StatusOK, h.deps.Summary(r.Context()))
}

// HandleGetModel handles GET /model requests.
func (h *ReferenceHandler) HandleGetModel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, r, http.StatusOK, h.deps.Model(r.Context()))
}
