package httpapi

import (
	"net/http"

	"github.com/riskibarqy/courtside/internal/domain/booking"
	"github.com/riskibarqy/courtside/internal/domain/schedule"
	"github.com/riskibarqy/courtside/internal/usecase"
)

func (h *Handler) ListCourts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCourts")
	defer span.End()

	items, err := h.availabilityService.ListCourts(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list courts failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]courtDTO, 0, len(items))
	for _, item := range items {
		out = append(out, courtToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckAvailability")
	defer span.End()

	courtID := pathValue(r, "courtID")
	query := r.URL.Query()

	date, err := parseDate("date", query.Get("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	start, end, err := parseWindow(query.Get("startTime"), query.Get("endTime"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.availabilityService.Check(ctx, courtID, date, start, end, query.Get("excludeId"))
	if err != nil {
		h.logger.WarnContext(ctx, "check availability failed", "court_id", courtID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := availabilityDTO{
		CourtID:   courtID,
		Date:      schedule.FormatDate(date),
		StartTime: start.String(),
		EndTime:   end.String(),
		Available: result.Available,
	}
	if result.Conflict != nil {
		conflict := bookingToDTO(*result.Conflict)
		out.Conflict = &conflict
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ReserveCourt(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReserveCourt")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req reserveCourtRequest
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
	start, end, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	courtID := pathValue(r, "courtID")
	item, err := h.bookingService.Reserve(ctx, usecase.ReserveCourtInput{
		CourtID:   courtID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		OwnerRef:  booking.UserOwner(principal.UserID),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "reserve court failed", "court_id", courtID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, bookingToDTO(item))
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelBooking")
	defer span.End()

	bookingID := pathValue(r, "bookingID")
	if err := h.bookingService.Cancel(ctx, bookingID); err != nil {
		h.logger.WarnContext(ctx, "cancel booking failed", "booking_id", bookingID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
