// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/auditplan/internal/domain/model"
	"github.com/okian/auditplan/pkg/logger"
)

// DefaultMaxLimit caps GET /staff/ranking?limit when no limit is configured.
const DefaultMaxLimit = 100

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	EstimateDependencies
	RankingDependencies
	StaffDependencies
	ReferenceDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	estimateHandler  *EstimateHandler
	rankingHandler   *RankingHandler
	staffHandler     *StaffHandler
	referenceHandler *ReferenceHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, maxLimit int) *Server {
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		estimateHandler:  NewEstimateHandler(deps),
		rankingHandler:   NewRankingHandler(deps, maxLimit),
		staffHandler:     NewStaffHandler(deps),
		referenceHandler: NewReferenceHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Exact paths win over the /staff/ prefix.
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/estimate", MetricsMiddleware(s.estimateHandler.HandlePostEstimate, "estimate"))
	mux.HandleFunc("/staff/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "staff_ranking"))
	mux.HandleFunc("/staff/", MetricsMiddleware(s.staffHandler.HandleGetStaff, "staff"))
	mux.HandleFunc("/reference", MetricsMiddleware(s.referenceHandler.HandleGetReference, "reference"))
	mux.HandleFunc("/model", MetricsMiddleware(s.referenceHandler.HandleGetModel, "model"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before touching the response so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeDomainError(w, r, fmt.Errorf("encode response: %w", err))
		return
	}
	writeBody(w, status, body)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	body, _ := json.Marshal(errorResponse{Code: code, Message: msg})
	writeBody(w, status, body)
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// writeDomainError translates pipeline errors into status codes. Internal
// failures are logged and their detail is not echoed to the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	code := model.ErrorCode(err)
	switch code {
	case model.CodeUnknownCategory, model.CodeInvalidInput:
		writeError(w, http.StatusBadRequest, code, err)
	case model.CodeNotFound:
		writeError(w, http.StatusNotFound, code, err)
	default:
		logger.Default().Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, code, errors.New(http.StatusText(http.StatusInternalServerError)))
	}
}
