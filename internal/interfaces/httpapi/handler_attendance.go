package httpapi

import (
	"net/http"

	"github.com/riskibarqy/courtside/internal/usecase"
)

func (h *Handler) ActivateToken(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateToken")
	defer span.End()

	var req activateTokenRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if req.TTLMinutes == 0 {
		req.TTLMinutes = int(h.cfg.TokenDefaultTTL.Minutes())
	}
	if req.TokenLength == 0 {
		req.TokenLength = h.cfg.TokenDefaultLength
	}

	sessionID := pathValue(r, "sessionID")
	token, err := h.tokenService.Activate(ctx, usecase.ActivateTokenInput{
		SessionID:        sessionID,
		TTLMinutes:       req.TTLMinutes,
		TokenLength:      req.TokenLength,
		RequiresLocation: req.RequiresLocation,
		Lat:              req.Lat,
		Lng:              req.Lng,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "activate attendance token failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tokenToDTO(token))
}

func (h *Handler) DeactivateToken(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeactivateToken")
	defer span.End()

	sessionID := pathValue(r, "sessionID")
	if err := h.tokenService.Deactivate(ctx, sessionID); err != nil {
		h.logger.WarnContext(ctx, "deactivate attendance token failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) GetTokenStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTokenStatus")
	defer span.End()

	status, err := h.tokenService.Status(ctx, pathValue(r, "sessionID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tokenStatusToDTO(status))
}

// SubmitAttendance records the calling player as present.
func (h *Handler) SubmitAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitAttendance")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitAttendanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := pathValue(r, "sessionID")
	record, err := h.attendanceService.Submit(ctx, usecase.SubmitAttendanceInput{
		SessionID: sessionID,
		Token:     req.Token,
		PlayerID:  principal.UserID,
		Lat:       req.Lat,
		Lng:       req.Lng,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit attendance failed", "session_id", sessionID, "player_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, attendanceToDTO(record))
}

func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordAttendance")
	defer span.End()

	var req recordAttendanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := pathValue(r, "sessionID")
	playerID := pathValue(r, "playerID")
	record, err := h.attendanceService.Record(ctx, usecase.RecordAttendanceInput{
		SessionID: sessionID,
		PlayerID:  playerID,
		State:     req.State,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record attendance failed", "session_id", sessionID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, attendanceToDTO(record))
}

func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAttendance")
	defer span.End()

	records, err := h.attendanceService.ListBySession(ctx, pathValue(r, "sessionID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]attendanceDTO, 0, len(records))
	for _, record := range records {
		out = append(out, attendanceToDTO(record))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
