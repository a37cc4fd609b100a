package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"github.com/google/uuid"

	"studyplan/domain/core"
	"studyplan/domain/insight"
	"studyplan/domain/schedule"
	"studyplan/domain/timer"
	apperrors "studyplan/internal/errors"
)

// userIDHeader carries the authenticated user identity, resolved upstream by
// the auth proxy. An absent header means an unauthenticated caller.
const userIDHeader = "X-User-ID"

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// scheduleView is the wire shape of a schedule; blocked dates always sorted
// ascending for presentation.
type scheduleView struct {
	UserID       uuid.UUID            `json:"user_id"`
	StartDate    *core.Date           `json:"start_date,omitempty"`
	EndDate      *core.Date           `json:"end_date,omitempty"`
	ScheduleData []schedule.DayConfig `json:"schedule_data"`
	BlockedDates []string             `json:"blocked_dates"`
}

func toScheduleView(s *schedule.StudySchedule) scheduleView {
	return scheduleView{
		UserID:       s.UserID,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		ScheduleData: s.ScheduleData,
		BlockedDates: schedule.SortedBlockedDates(s.BlockedDates),
	}
}

func (a *App) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	sched, err := a.schedules.Fetch(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleView(sched))
}

type saveScheduleRequest struct {
	ScheduleData []schedule.DayConfig `json:"schedule_data"`
	StartDate    *core.Date           `json:"start_date"`
	EndDate      *core.Date           `json:"end_date"`
	// Omitted (null) blocked dates keep the currently held set.
	BlockedDates *[]string `json:"blocked_dates"`
}

func (a *App) handleSaveSchedule(w http.ResponseWriter, r *http.Request) {
	var req saveScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}
	var blocked []string
	if req.BlockedDates != nil {
		blocked = *req.BlockedDates
		if blocked == nil {
			blocked = []string{}
		}
	}
	sched, err := a.schedules.Save(r.Context(), userID(r), req.ScheduleData, req.StartDate, req.EndDate, blocked)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleView(sched))
}

type blockedDatesRequest struct {
	BlockedDates []string `json:"blocked_dates"`
}

func (a *App) handleSetBlockedDates(w http.ResponseWriter, r *http.Request) {
	var req blockedDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}
	sched, err := a.schedules.UpdateBlockedDates(r.Context(), userID(r), req.BlockedDates)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleView(sched))
}

type blockedDateRequest struct {
	Date string `json:"date"`
}

func (a *App) handleAddBlockedDate(w http.ResponseWriter, r *http.Request) {
	var req blockedDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}
	if _, err := core.ParseDate(req.Date); err != nil {
		writeError(w, apperrors.WithCode(apperrors.CodeInvalidInput, err))
		return
	}
	uid := userID(r)
	current, err := a.schedules.Fetch(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	updated := schedule.AddBlockedDate(current.BlockedDates, req.Date)
	sched, err := a.schedules.UpdateBlockedDates(r.Context(), uid, updated)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleView(sched))
}

func (a *App) handleRemoveBlockedDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	uid := userID(r)
	current, err := a.schedules.Fetch(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	updated := schedule.RemoveBlockedDate(current.BlockedDates, date)
	sched, err := a.schedules.UpdateBlockedDates(r.Context(), uid, updated)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleView(sched))
}

type startSessionRequest struct {
	Mode           timer.Mode `json:"mode"`
	InitialSeconds int        `json:"initial_seconds"`
}

func (a *App) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}
	state, err := a.sessions.Start(r.Context(), userID(r), req.Mode, req.InitialSeconds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (a *App) handleSessionState(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.InvalidInput("invalid session id"))
		return
	}
	state, err := a.sessions.State(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (a *App) handleToggleSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.InvalidInput("invalid session id"))
		return
	}
	state, err := a.sessions.Toggle(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type finishSessionRequest struct {
	TotalQuestions int `json:"total_questions"`
	Answered       int `json:"answered"`
	Correct        int `json:"correct"`
}

func (a *App) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.InvalidInput("invalid session id"))
		return
	}
	var req finishSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}
	result, err := a.sessions.Finish(r.Context(), id, req.TotalQuestions, req.Answered, req.Correct)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.InvalidInput("invalid session id"))
		return
	}
	if err := a.sessions.Abandon(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type insightResponse struct {
	Content string `json:"content"`
	HTML    string `json:"html"`
}

func (a *App) handleInsight(w http.ResponseWriter, r *http.Request) {
	var req insight.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}
	resp, err := a.insights.Generate(r.Context(), userID(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	html := markdown.ToHTML([]byte(resp.Content), nil, nil)
	writeJSON(w, http.StatusOK, insightResponse{Content: resp.Content, HTML: string(html)})
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="study-plan.xlsx"`)
	if err := a.reports.Write(r.Context(), userID(r), w); err != nil {
		a.log.Error("report download failed: %v", err)
	}
}

// userID resolves the caller identity; uuid.Nil means unauthenticated and the
// services answer with NOT_AUTHENTICATED without touching the network.
func userID(r *http.Request) uuid.UUID {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeNotAuthenticated:
		status = http.StatusUnauthorized
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeInvalidInput, apperrors.CodeValidationError:
		status = http.StatusBadRequest
	case apperrors.CodeRateLimited:
		status = http.StatusTooManyRequests
	case apperrors.CodeQuotaExhausted:
		status = http.StatusPaymentRequired
	}
	writeJSON(w, status, map[string]string{
		"code":  code,
		"error": err.Error(),
	})
}
