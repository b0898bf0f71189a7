package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mrwolf/burnout-server/internal/db"
	"github.com/mrwolf/burnout-server/internal/escalation"
	"github.com/mrwolf/burnout-server/internal/models"
	"github.com/mrwolf/burnout-server/internal/scheduler"
	"github.com/mrwolf/burnout-server/internal/tracker"
)

const Version = "1.0.0"

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("[API] Failed to encode response", slog.String("error", err.Error()))
	}
}

type Handlers struct {
	svc    *tracker.Service
	checks []*scheduler.Check
}

func NewHandlers(svc *tracker.Service, checks []*scheduler.Check) *Handlers {
	return &Handlers{svc: svc, checks: checks}
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:   "ok",
		Database: "not checked",
		Model:    "not checked",
		Version:  Version,
	}

	for _, c := range h.checks {
		if !c.Healthy() {
			resp.Status = "degraded"
		}
		switch c.Name() {
		case "database":
			resp.Database = c.Status()
		case "model":
			resp.Model = c.Status()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusOK, resp)
}

// SubmitMood handles POST /api/v1/moods
func (h *Handlers) SubmitMood(w http.ResponseWriter, r *http.Request) {
	var req models.MoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), models.CodeInvalidBody)
		return
	}

	actor := GetActor(r)
	out, err := h.svc.Submit(r.Context(), actor, tracker.Submission{
		Mood:         req.Mood,
		SleepHours:   string(req.SleepHours),
		JournalEntry: req.JournalEntry,
	})
	if errors.Is(err, tracker.ErrIncomplete) {
		writeError(w, http.StatusBadRequest, "Please fill in all fields", models.CodeIncomplete)
		return
	}
	if err != nil {
		slog.Error("[API] Submission failed", slog.String("actor", actor), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to store mood record", models.CodeInternal)
		return
	}

	resp := models.MoodResponse{
		Prediction: out.Prediction(),
		Raw:        out.Result.Raw,
		Recorded:   out.Record != nil,
		Escalation: escalationView(out.Escalation),
		Handoff:    out.Handoff,
		Tips:       out.Tips,
	}
	if out.Record != nil {
		rec := recordView(*out.Record)
		resp.Record = &rec
	}

	status := http.StatusOK
	if resp.Recorded {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

// History handles GET /api/v1/moods
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.History(r.Context(), GetActor(r))
	if err != nil {
		slog.Error("[API] History query failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load history", models.CodeInternal)
		return
	}
	writeJSON(w, http.StatusOK, models.HistoryResponse{Records: recordViews(records)})
}

// ClearHistory handles DELETE /api/v1/moods
func (h *Handlers) ClearHistory(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Clear(r.Context(), GetActor(r))
	if err != nil {
		slog.Error("[API] Clear failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to clear history", models.CodeInternal)
		return
	}
	writeJSON(w, http.StatusOK, models.ClearResponse{Deleted: n})
}

// StreamHistory handles GET /api/v1/moods/stream as server-sent events.
// Each event carries the full ordered history.
func (h *Handlers) StreamHistory(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported", models.CodeStreaming)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for records := range h.svc.Watch(r.Context(), GetActor(r)) {
		data, err := json.Marshal(models.HistoryResponse{Records: recordViews(records)})
		if err != nil {
			slog.Warn("[API] Failed to encode history event", slog.String("error", err.Error()))
			return
		}
		if _, err := fmt.Fprintf(w, "event: history\ndata: %s\n\n", data); err != nil {
			return
		}
		flusher.Flush()
	}
}

// Trend handles GET /api/v1/moods/trend
func (h *Handlers) Trend(w http.ResponseWriter, r *http.Request) {
	week, err := h.svc.Trend(r.Context(), GetActor(r), time.Now())
	if err != nil {
		slog.Error("[API] Trend query failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to build trend", models.CodeInternal)
		return
	}
	writeJSON(w, http.StatusOK, week)
}

// Escalation handles GET /api/v1/escalation
func (h *Handlers) Escalation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, escalationView(h.svc.Escalation(GetActor(r))))
}

// AcknowledgeHandoff handles POST /api/v1/escalation/ack
func (h *Handlers) AcknowledgeHandoff(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, escalationView(h.svc.Acknowledge(GetActor(r))))
}

// Contacts handles GET /api/v1/handoff/contacts
func (h *Handlers) Contacts(w http.ResponseWriter, r *http.Request) {
	dir := h.svc.Contacts()
	resp := models.ContactsResponse{Contacts: make([]models.Contact, 0, len(dir))}
	for _, c := range dir {
		resp.Contacts = append(resp.Contacts, models.Contact{
			Name:  c.Name,
			Email: c.Email,
			Role:  c.Role,
			Label: c.Label(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Compose handles POST /api/v1/handoff/compose
func (h *Handlers) Compose(w http.ResponseWriter, r *http.Request) {
	var req models.ComposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Contact == "" {
		writeError(w, http.StatusBadRequest, "contact is required", models.CodeInvalidBody)
		return
	}

	msg, draft, err := h.svc.Compose(GetActor(r), req.Contact)
	if errors.Is(err, tracker.ErrUnknownContact) {
		writeError(w, http.StatusNotFound, err.Error(), models.CodeUnknownContact)
		return
	}
	if err != nil {
		// the message is still usable without a saved draft
		slog.Warn("[API] Hand-off draft not saved", slog.String("error", err.Error()))
	}

	writeJSON(w, http.StatusOK, models.ComposeResponse{
		To:      msg.To,
		Subject: msg.Subject,
		Body:    msg.Body,
		MailTo:  msg.MailTo,
		Draft:   draft,
	})
}

func escalationView(s escalation.State) models.Escalation {
	return models.Escalation{UnfitCount: s.UnfitCount, HandoffPending: s.HandoffPending}
}

func recordView(r db.MoodRecord) models.MoodRecord {
	return models.MoodRecord{
		ID:           r.ID,
		Mood:         r.Mood,
		SleepHours:   r.SleepHours,
		JournalEntry: r.JournalEntry,
		Sentiment:    r.Sentiment,
		BurnoutScore: r.BurnoutScore,
		CreatedAt:    r.CreatedAt,
	}
}

func recordViews(records []db.MoodRecord) []models.MoodRecord {
	out := make([]models.MoodRecord, 0, len(records))
	for _, r := range records {
		out = append(out, recordView(r))
	}
	return out
}
