package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/courtside/internal/config"
	"github.com/riskibarqy/courtside/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/courtside/internal/platform/id"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
	"github.com/riskibarqy/courtside/internal/usecase"
)

// NewHTTPServer wires storage, services and the router. The returned close
// function releases storage resources and must run after the server stops.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	locks := resilience.NewKeyedMutex()
	ids := idgen.NewUUIDGenerator()

	availabilitySvc := usecase.NewAvailabilityService(repos.courts, repos.bookings)
	bookingSvc := usecase.NewBookingService(availabilitySvc, repos.bookings, locks, ids, logger)
	sessionSvc := usecase.NewSessionService(
		bookingSvc,
		repos.sessions,
		repos.attendance,
		repos.lineups,
		locks,
		ids,
		usecase.SessionServiceConfig{RecurringWorkers: cfg.RecurringWorkers},
		logger,
	)
	tokenSvc := usecase.NewAttendanceTokenService(repos.sessions, idgen.NewRandomTokenGenerator(), locks, logger)
	attendanceSvc := usecase.NewAttendanceService(
		repos.sessions,
		repos.attendance,
		ids,
		usecase.AttendanceServiceConfig{GeofenceRadiusMeters: cfg.GeofenceRadiusMeters},
		logger,
	)
	lineupSvc := usecase.NewLineupService(
		repos.sessions,
		repos.lineups,
		locks,
		ids,
		usecase.LineupServiceConfig{DefaultFormation: cfg.LineupDefaultFormation},
		logger,
	)

	handler := httpapi.NewHandler(
		availabilitySvc,
		bookingSvc,
		sessionSvc,
		tokenSvc,
		attendanceSvc,
		lineupSvc,
		httpapi.HandlerConfig{
			TokenDefaultTTL:    cfg.TokenDefaultTTL,
			TokenDefaultLength: cfg.TokenDefaultLength,
		},
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}
