package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/auditplan/internal/domain/model"
)

// RankingDependencies defines the interface for staff ranking reads.
type RankingDependencies interface {
	Ranking(ctx context.Context, limit int) []model.RankedStaff
}

// RankingHandler handles staff ranking requests.
type RankingHandler struct {
	deps     RankingDependencies
	maxLimit int
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps RankingDependencies, maxLimit int) *RankingHandler {
	return &RankingHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetRanking handles GET /staff/ranking?limit=N requests. Without a
// limit the first maxLimit entries are returned.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%w: max %d", ErrLimitExceeded, h.maxLimit))
			return
		}
	}
	writeJSON(w, r, http.StatusOK, h.deps.Ranking(r.Context(), n))
}
