package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/courtside/internal/domain/user"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/usecase"
)

// HandlerConfig holds request defaults applied when a client omits them.
type HandlerConfig struct {
	TokenDefaultTTL    time.Duration
	TokenDefaultLength int
}

type Handler struct {
	availabilityService *usecase.AvailabilityService
	bookingService      *usecase.BookingService
	sessionService      *usecase.SessionService
	tokenService        *usecase.AttendanceTokenService
	attendanceService   *usecase.AttendanceService
	lineupService       *usecase.LineupService
	cfg                 HandlerConfig
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	availabilityService *usecase.AvailabilityService,
	bookingService *usecase.BookingService,
	sessionService *usecase.SessionService,
	tokenService *usecase.AttendanceTokenService,
	attendanceService *usecase.AttendanceService,
	lineupService *usecase.LineupService,
	cfg HandlerConfig,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.TokenDefaultTTL < time.Minute {
		cfg.TokenDefaultTTL = 15 * time.Minute
	}
	if cfg.TokenDefaultLength <= 0 {
		cfg.TokenDefaultLength = 6
	}

	return &Handler{
		availabilityService: availabilityService,
		bookingService:      bookingService,
		sessionService:      sessionService,
		tokenService:        tokenService,
		attendanceService:   attendanceService,
		lineupService:       lineupService,
		cfg:                 cfg,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func pathValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}
