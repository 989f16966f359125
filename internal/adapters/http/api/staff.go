package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/auditplan/internal/domain/model"
)

// StaffDependencies defines the interface for single staff lookups.
type StaffDependencies interface {
	StaffRank(ctx context.Context, staffID string) (model.RankedStaff, error)
}

// StaffHandler handles staff lookups.
type StaffHandler struct {
	deps StaffDependencies
}

// NewStaffHandler creates a new staff handler.
func NewStaffHandler(deps StaffDependencies) *StaffHandler {
	return &StaffHandler{deps: deps}
}

// HandleGetStaff handles GET /staff/{staff_id} requests.
func (h *StaffHandler) HandleGetStaff(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/staff/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	entry, err := h.deps.StaffRank(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, entry)
}
