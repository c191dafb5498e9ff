package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/tolga/atcroster/internal/model"
	"github.com/tolga/atcroster/internal/roster"
	"github.com/tolga/atcroster/internal/service"
)

// RosterHandler handles roster-run HTTP requests.
type RosterHandler struct {
	rosterService *service.RosterService
}

// NewRosterHandler creates a new RosterHandler instance.
func NewRosterHandler(rosterService *service.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// submitRosterRunRequest is the POST /roster-runs request body.
type submitRosterRunRequest struct {
	Year           int                   `json:"year"`
	StartDay       int                   `json:"start_day"`
	EndDay         int                   `json:"end_day"`
	Config         roster.RosterConfig   `json:"config"`
	PreAssignments roster.PreAssignments `json:"pre_assignments"`
	IdempotencyKey string                `json:"idempotency_key"`
}

// Submit handles POST /roster-runs
func (h *RosterHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRosterRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	run, err := h.rosterService.Submit(r.Context(), service.SubmitInput{
		Year:           req.Year,
		StartDay:       req.StartDay,
		EndDay:         req.EndDay,
		Config:         req.Config,
		PreAssignments: req.PreAssignments,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		h.respondSubmitError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, modelToResponse(run))
}

func (h *RosterHandler) respondSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, roster.ErrConfigError), errors.Is(err, roster.ErrInvalidDay):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "Failed to submit roster run")
	}
}

// GetByID handles GET /roster-runs/{id}
func (h *RosterHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid roster run ID")
		return
	}

	run, err := h.rosterService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRosterRunNotFound) {
			respondError(w, http.StatusNotFound, "Roster run not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to get roster run")
		return
	}

	status := http.StatusOK
	if run.Status == model.RosterRunStatusFailed {
		status = mapFailureStatus(run)
	}

	respondJSON(w, status, modelToResponse(run))
}

// mapFailureStatus maps a failed run's recorded solver error back to the
// HTTP status a synchronous call would have returned, per the wrapped
// sentinel each error kind carries.
func mapFailureStatus(run *model.RosterRun) int {
	if run.ErrorMessage == nil {
		return http.StatusInternalServerError
	}
	msg := *run.ErrorMessage
	switch {
	case containsAny(msg, roster.ErrConfigError.Error(), roster.ErrInvalidDay.Error()):
		return http.StatusUnprocessableEntity
	case containsAny(msg, roster.ErrInfeasibleModel.Error()):
		return http.StatusConflict
	case containsAny(msg, roster.ErrDeadlineExpired.Error()):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// rosterRunResponse is the wire representation of a RosterRun, formatting
// identifiers and timestamps the same way the rest of the HTTP shell does.
type rosterRunResponse struct {
	ID           strfmt.UUID      `json:"id"`
	Status       string           `json:"status"`
	Year         int              `json:"year"`
	StartDay     int              `json:"start_day"`
	EndDay       int              `json:"end_day"`
	SolverStatus string           `json:"solver_status,omitempty"`
	Warnings     []string         `json:"warnings,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
	Table        json.RawMessage `json:"result,omitempty"`
	CreatedAt    strfmt.DateTime `json:"created_at"`
	UpdatedAt    strfmt.DateTime `json:"updated_at"`
	StartedAt    *strfmt.DateTime `json:"started_at,omitempty"`
	CompletedAt  *strfmt.DateTime `json:"completed_at,omitempty"`
}

func modelToResponse(run *model.RosterRun) *rosterRunResponse {
	resp := &rosterRunResponse{
		ID:           strfmt.UUID(run.ID.String()),
		Status:       string(run.Status),
		Year:         run.Year,
		StartDay:     run.StartDay,
		EndDay:       run.EndDay,
		SolverStatus: run.SolverStatus,
		Warnings:     run.Warnings,
		CreatedAt:    strfmt.DateTime(run.CreatedAt),
		UpdatedAt:    strfmt.DateTime(run.UpdatedAt),
	}
	if run.ErrorMessage != nil {
		resp.ErrorMessage = *run.ErrorMessage
	}
	if len(run.ResultJSON) > 0 {
		resp.Table = json.RawMessage(run.ResultJSON)
	}
	if run.StartedAt != nil {
		t := strfmt.DateTime(*run.StartedAt)
		resp.StartedAt = &t
	}
	if run.CompletedAt != nil {
		t := strfmt.DateTime(*run.CompletedAt)
		resp.CompletedAt = &t
	}
	return resp
}
