package httpapi

import (
	"net/http"
)

func (h *Handler) GenerateLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateLineup")
	defer span.End()

	var req lineupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := pathValue(r, "sessionID")
	item, err := h.lineupService.Generate(ctx, sessionID, lineupParamsFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "generate lineup failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, lineupToDTO(item))
}

func (h *Handler) ReplaceLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceLineup")
	defer span.End()

	var req lineupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := pathValue(r, "sessionID")
	item, err := h.lineupService.Replace(ctx, sessionID, lineupParamsFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "replace lineup failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item))
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	item, err := h.lineupService.Get(ctx, pathValue(r, "sessionID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item))
}

func (h *Handler) DeleteLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteLineup")
	defer span.End()

	sessionID := pathValue(r, "sessionID")
	if err := h.lineupService.Delete(ctx, sessionID); err != nil {
		h.logger.WarnContext(ctx, "delete lineup failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
