package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCourtRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/courts", RequireAuth(http.HandlerFunc(handler.ListCourts)))
	mux.Handle("GET /v1/courts/{courtID}/availability", RequireAuth(http.HandlerFunc(handler.CheckAvailability)))
	mux.Handle("POST /v1/courts/{courtID}/bookings", RequireCoach(http.HandlerFunc(handler.ReserveCourt)))
	mux.Handle("DELETE /v1/bookings/{bookingID}", RequireCoach(http.HandlerFunc(handler.CancelBooking)))
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/sessions", RequireCoach(http.HandlerFunc(handler.CreateSession)))
	mux.Handle("POST /v1/sessions/recurring", RequireCoach(http.HandlerFunc(handler.CreateRecurringSessions)))
	mux.Handle("GET /v1/sessions/{sessionID}", RequireAuth(http.HandlerFunc(handler.GetSession)))
	mux.Handle("PUT /v1/sessions/{sessionID}", RequireCoach(http.HandlerFunc(handler.UpdateSession)))
	mux.Handle("DELETE /v1/sessions/{sessionID}", RequireCoach(http.HandlerFunc(handler.DeleteSession)))
}

func registerAttendanceRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/sessions/{sessionID}/token", RequireCoach(http.HandlerFunc(handler.ActivateToken)))
	mux.Handle("DELETE /v1/sessions/{sessionID}/token", RequireCoach(http.HandlerFunc(handler.DeactivateToken)))
	mux.Handle("GET /v1/sessions/{sessionID}/token", RequireCoach(http.HandlerFunc(handler.GetTokenStatus)))
	mux.Handle("POST /v1/sessions/{sessionID}/attendance", RequireAuth(http.HandlerFunc(handler.SubmitAttendance)))
	mux.Handle("PUT /v1/sessions/{sessionID}/attendance/{playerID}", RequireCoach(http.HandlerFunc(handler.RecordAttendance)))
	mux.Handle("GET /v1/sessions/{sessionID}/attendance", RequireAuth(http.HandlerFunc(handler.ListAttendance)))
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/sessions/{sessionID}/lineup", RequireCoach(http.HandlerFunc(handler.GenerateLineup)))
	mux.Handle("PUT /v1/sessions/{sessionID}/lineup", RequireCoach(http.HandlerFunc(handler.ReplaceLineup)))
	mux.Handle("GET /v1/sessions/{sessionID}/lineup", RequireAuth(http.HandlerFunc(handler.GetLineup)))
	mux.Handle("DELETE /v1/sessions/{sessionID}/lineup", RequireCoach(http.HandlerFunc(handler.DeleteLineup)))
}
