package httpapi

import (
	"time"

	"github.com/riskibarqy/courtside/internal/domain/attendance"
	"github.com/riskibarqy/courtside/internal/domain/booking"
	"github.com/riskibarqy/courtside/internal/domain/court"
	"github.com/riskibarqy/courtside/internal/domain/lineup"
	"github.com/riskibarqy/courtside/internal/domain/schedule"
	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/usecase"
)

type reserveCourtRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

type sessionRequest struct {
	CourtID          string `json:"courtId" validate:"required_without=ExternalLocation,excluded_with=ExternalLocation"`
	ExternalLocation string `json:"externalLocation" validate:"omitempty,max=200"`
	Date             string `json:"date" validate:"required"`
	StartTime        string `json:"startTime" validate:"required"`
	EndTime          string `json:"endTime" validate:"required"`
	GroupID          string `json:"groupId" validate:"omitempty,max=100"`
	SessionType      string `json:"sessionType" validate:"omitempty,max=50"`
}

type recurringSessionRequest struct {
	CourtID          string `json:"courtId" validate:"required_without=ExternalLocation,excluded_with=ExternalLocation"`
	ExternalLocation string `json:"externalLocation" validate:"omitempty,max=200"`
	StartDate        string `json:"startDate" validate:"required"`
	EndDate          string `json:"endDate" validate:"required"`
	Weekdays         []int  `json:"weekdays" validate:"required,min=1,max=7,dive,min=1,max=7"`
	StartTime        string `json:"startTime" validate:"required"`
	EndTime          string `json:"endTime" validate:"required"`
	GroupID          string `json:"groupId" validate:"omitempty,max=100"`
	SessionType      string `json:"sessionType" validate:"omitempty,max=50"`
}

type activateTokenRequest struct {
	TTLMinutes       int      `json:"ttlMinutes" validate:"omitempty,min=1"`
	TokenLength      int      `json:"tokenLength" validate:"omitempty,min=1,max=64"`
	RequiresLocation bool     `json:"requiresLocation"`
	Lat              *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng              *float64 `json:"lng" validate:"omitempty,longitude"`
}

type submitAttendanceRequest struct {
	Token string   `json:"token" validate:"required,max=64"`
	Lat   *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng   *float64 `json:"lng" validate:"omitempty,longitude"`
}

type recordAttendanceRequest struct {
	State string `json:"state" validate:"required,oneof=presente ausente justificado"`
}

type lineupRequest struct {
	Auto      bool                  `json:"auto"`
	Formation string                `json:"formation" validate:"omitempty,max=20"`
	PlayerIDs []string              `json:"playerIds" validate:"omitempty,dive,required"`
	Players   []lineupPlayerRequest `json:"players" validate:"omitempty,dive"`
}

type lineupPlayerRequest struct {
	PlayerID string  `json:"playerId" validate:"required"`
	Position string  `json:"position" validate:"omitempty,oneof=GK DEF MID FWD SUB"`
	Order    int     `json:"order" validate:"omitempty,min=1"`
	Comment  string  `json:"comment" validate:"omitempty,max=280"`
	X        float64 `json:"x" validate:"min=0,max=100"`
	Y        float64 `json:"y" validate:"min=0,max=100"`
}

type courtDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type bookingDTO struct {
	ID        string `json:"id"`
	CourtID   string `json:"courtId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	OwnerRef  string `json:"ownerRef"`
	Status    string `json:"status"`
}

type availabilityDTO struct {
	CourtID   string      `json:"courtId"`
	Date      string      `json:"date"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
	Available bool        `json:"available"`
	Conflict  *bookingDTO `json:"conflict,omitempty"`
}

type sessionDTO struct {
	ID               string    `json:"id"`
	CourtID          string    `json:"courtId,omitempty"`
	ExternalLocation string    `json:"externalLocation,omitempty"`
	Date             string    `json:"date"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	GroupID          string    `json:"groupId,omitempty"`
	SessionType      string    `json:"sessionType,omitempty"`
	CreatedBy        string    `json:"createdBy,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type occurrenceErrorDTO struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type recurringResultDTO struct {
	Created []sessionDTO         `json:"created"`
	Errors  []occurrenceErrorDTO `json:"errors"`
}

type tokenDTO struct {
	Token            string    `json:"token"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RequiresLocation bool      `json:"requiresLocation"`
	Lat              *float64  `json:"lat,omitempty"`
	Lng              *float64  `json:"lng,omitempty"`
}

type tokenStatusDTO struct {
	State            string     `json:"state"`
	Valid            bool       `json:"valid"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	RequiresLocation bool       `json:"requiresLocation"`
}

type attendanceDTO struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	PlayerID   string    `json:"playerId"`
	State      string    `json:"state"`
	Origin     string    `json:"origin"`
	Lat        *float64  `json:"lat,omitempty"`
	Lng        *float64  `json:"lng,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

type lineupDTO struct {
	ID            string            `json:"id"`
	SessionID     string            `json:"sessionId"`
	AutoGenerated bool              `json:"autoGenerated"`
	Formation     string            `json:"formation,omitempty"`
	Players       []lineupPlayerDTO `json:"players"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type lineupPlayerDTO struct {
	PlayerID string  `json:"playerId"`
	Position string  `json:"position"`
	Order    int     `json:"order"`
	Comment  string  `json:"comment,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

func courtToDTO(item court.Court) courtDTO {
	return courtDTO{ID: item.ID, Name: item.Name}
}

func bookingToDTO(item booking.Booking) bookingDTO {
	return bookingDTO{
		ID:        item.ID,
		CourtID:   item.CourtID,
		Date:      schedule.FormatDate(item.Date),
		StartTime: item.StartTime.String(),
		EndTime:   item.EndTime.String(),
		OwnerRef:  item.OwnerRef,
		Status:    string(item.Status),
	}
}

func sessionToDTO(item session.Session) sessionDTO {
	return sessionDTO{
		ID:               item.ID,
		CourtID:          item.CourtID,
		ExternalLocation: item.ExternalLocation,
		Date:             schedule.FormatDate(item.Date),
		StartTime:        item.StartTime.String(),
		EndTime:          item.EndTime.String(),
		GroupID:          item.GroupID,
		SessionType:      item.SessionType,
		CreatedBy:        item.CreatedBy,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

func recurringResultToDTO(result usecase.RecurringResult) recurringResultDTO {
	out := recurringResultDTO{
		Created: make([]sessionDTO, 0, len(result.Created)),
		Errors:  make([]occurrenceErrorDTO, 0, len(result.Errors)),
	}
	for _, item := range result.Created {
		out.Created = append(out.Created, sessionToDTO(item))
	}
	for _, item := range result.Errors {
		out.Errors = append(out.Errors, occurrenceErrorDTO{Date: item.Date, Reason: item.Reason})
	}
	return out
}

func tokenToDTO(token session.Token) tokenDTO {
	return tokenDTO{
		Token:            token.Value,
		ExpiresAt:        token.ExpiresAt,
		RequiresLocation: token.RequiresLocation,
		Lat:              token.Lat,
		Lng:              token.Lng,
	}
}

func tokenStatusToDTO(status usecase.TokenStatus) tokenStatusDTO {
	out := tokenStatusDTO{
		State:            string(status.State),
		Valid:            status.State == session.TokenStateActive,
		RequiresLocation: status.RequiresLocation,
	}
	if !status.ExpiresAt.IsZero() {
		expiresAt := status.ExpiresAt
		out.ExpiresAt = &expiresAt
	}
	return out
}

func attendanceToDTO(item attendance.Record) attendanceDTO {
	return attendanceDTO{
		ID:         item.ID,
		SessionID:  item.SessionID,
		PlayerID:   item.PlayerID,
		State:      string(item.State),
		Origin:     string(item.Origin),
		Lat:        item.Lat,
		Lng:        item.Lng,
		RecordedAt: item.RecordedAt,
	}
}

func lineupToDTO(item lineup.Lineup) lineupDTO {
	out := lineupDTO{
		ID:            item.ID,
		SessionID:     item.SessionID,
		AutoGenerated: item.AutoGenerated,
		Formation:     item.Formation,
		Players:       make([]lineupPlayerDTO, 0, len(item.Players)),
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	for _, p := range item.Players {
		out.Players = append(out.Players, lineupPlayerDTO{
			PlayerID: p.PlayerID,
			Position: string(p.Position),
			Order:    p.Order,
			Comment:  p.Comment,
			X:        p.X,
			Y:        p.Y,
		})
	}
	return out
}

func lineupParamsFromRequest(req lineupRequest) usecase.LineupParams {
	params := usecase.LineupParams{
		Auto:      req.Auto,
		Formation: req.Formation,
		PlayerIDs: req.PlayerIDs,
	}
	if len(req.Players) > 0 {
		params.Players = make([]lineup.Player, 0, len(req.Players))
		for _, p := range req.Players {
			params.Players = append(params.Players, lineup.Player{
				PlayerID: p.PlayerID,
				Position: lineup.Position(p.Position),
				Order:    p.Order,
				Comment:  p.Comment,
				X:        p.X,
				Y:        p.Y,
			})
		}
	}
	return params
}
