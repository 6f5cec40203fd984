package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/courtside/internal/domain/schedule"
	"github.com/riskibarqy/courtside/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

var strictJSON = sonic.Config{
	DisallowUnknownFields: true,
	ValidateString:        true,
}.Froze()

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)); err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(buf.B)) == 0 {
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := strictJSON.Unmarshal(buf.B, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseDate(field, raw string) (time.Time, error) {
	out, err := schedule.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", usecase.ErrInvalidInput, field, err)
	}
	return out, nil
}

func parseWindow(startRaw, endRaw string) (schedule.TimeOfDay, schedule.TimeOfDay, error) {
	start, err := schedule.ParseTimeOfDay(startRaw)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: startTime: %v", usecase.ErrInvalidInput, err)
	}
	end, err := schedule.ParseTimeOfDay(endRaw)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: endTime: %v", usecase.ErrInvalidInput, err)
	}
	return start, end, nil
}
