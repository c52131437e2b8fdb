package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/runoshun/taskpulse/internal/domain"
	"github.com/runoshun/taskpulse/internal/usecase"
)

type handler struct {
	logger *slog.Logger
	deps   Deps
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// suggestionsResponse is the body of GET /api/insights/suggestions.
type suggestionsResponse struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
	Hidden      int                 `json:"hidden"`
}

// alertsResponse is the body of GET /api/insights/alerts.
type alertsResponse struct {
	Alerts []domain.Alert `json:"alerts"`
}

// insightsResponse wraps the report with the number of hidden suggestions.
type insightsResponse struct {
	*domain.Report
	Hidden int `json:"hidden"`
}

func (h *handler) buildInput(r *http.Request) usecase.BuildReportInput {
	includeDismissed, _ := strconv.ParseBool(r.URL.Query().Get("include_dismissed"))
	return usecase.BuildReportInput{
		Language:         r.URL.Query().Get("lang"),
		IncludeDismissed: includeDismissed,
	}
}

func (h *handler) getInsights(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.BuildReport.Execute(r.Context(), h.buildInput(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insightsResponse{Report: out.Report, Hidden: out.Hidden})
}

func (h *handler) getAlerts(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.BuildReport.Execute(r.Context(), h.buildInput(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alertsResponse{Alerts: out.Report.Alerts})
}

func (h *handler) getSuggestions(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.BuildReport.Execute(r.Context(), h.buildInput(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{
		Suggestions: out.Report.Suggestions,
		Hidden:      out.Hidden,
	})
}

func (h *handler) getDismissals(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.ListDismissals.Execute(r.Context(), usecase.ListDismissalsInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Dismissals)
}

func (h *handler) dismissSuggestion(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.Dismiss.Execute(r.Context(), usecase.DismissSuggestionInput{
		ID: chi.URLParam(r, "id"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.Dismissal{ID: out.ID, DismissedAt: out.DismissedAt})
}

func (h *handler) restoreSuggestion(w http.ResponseWriter, r *http.Request) {
	_, err := h.deps.Restore.Execute(r.Context(), usecase.RestoreSuggestionsInput{
		ID: chi.URLParam(r, "id"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	out, err := h.deps.Export.Execute(r.Context(), usecase.ExportReportInput{
		Writer:   &buf,
		Language: r.URL.Query().Get("lang"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *handler) exportTasksCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	out, err := h.deps.ExportTasks.Execute(r.Context(), usecase.ExportTasksInput{
		Writer:   &buf,
		Language: r.URL.Query().Get("lang"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrSuggestionNotFound), errors.Is(err, domain.ErrNotDismissed):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAPIUnavailable), errors.Is(err, domain.ErrInvalidSnapshot):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
