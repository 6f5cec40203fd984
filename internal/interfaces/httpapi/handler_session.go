package httpapi

import (
	"net/http"

	"github.com/riskibarqy/courtside/internal/domain/user"
	"github.com/riskibarqy/courtside/internal/usecase"
)

func sessionDetails(principal user.Principal, courtID, externalLocation, startRaw, endRaw, groupID, sessionType string) (usecase.SessionDetails, error) {
	start, end, err := parseWindow(startRaw, endRaw)
	if err != nil {
		return usecase.SessionDetails{}, err
	}
	return usecase.SessionDetails{
		CourtID:          courtID,
		ExternalLocation: externalLocation,
		StartTime:        start,
		EndTime:          end,
		GroupID:          groupID,
		SessionType:      sessionType,
		CreatedBy:        principal.UserID,
	}, nil
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSession")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	details, err := sessionDetails(principal, req.CourtID, req.ExternalLocation, req.StartTime, req.EndTime, req.GroupID, req.SessionType)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.sessionService.CreateSingle(ctx, usecase.CreateSessionInput{SessionDetails: details, Date: date})
	if err != nil {
		h.logger.WarnContext(ctx, "create session failed", "created_by", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sessionToDTO(item))
}

// CreateRecurringSessions answers 201 when at least one occurrence was
// created and 200 when every occurrence was rejected.
func (h *Handler) CreateRecurringSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRecurringSessions")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req recurringSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	startDate, err := parseDate("startDate", req.StartDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endDate, err := parseDate("endDate", req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	details, err := sessionDetails(principal, req.CourtID, req.ExternalLocation, req.StartTime, req.EndTime, req.GroupID, req.SessionType)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.sessionService.CreateRecurring(ctx, usecase.CreateRecurringInput{
		SessionDetails: details,
		StartDate:      startDate,
		EndDate:        endDate,
		Weekdays:       req.Weekdays,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create recurring sessions failed", "created_by", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if len(result.Created) > 0 {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, recurringResultToDTO(result))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	item, err := h.sessionService.Get(ctx, pathValue(r, "sessionID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(item))
}

func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSession")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	details, err := sessionDetails(principal, req.CourtID, req.ExternalLocation, req.StartTime, req.EndTime, req.GroupID, req.SessionType)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := pathValue(r, "sessionID")
	item, err := h.sessionService.Update(ctx, usecase.UpdateSessionInput{
		SessionDetails: details,
		SessionID:      sessionID,
		Date:           date,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update session failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(item))
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSession")
	defer span.End()

	sessionID := pathValue(r, "sessionID")
	if err := h.sessionService.Delete(ctx, sessionID); err != nil {
		h.logger.WarnContext(ctx, "delete session failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
