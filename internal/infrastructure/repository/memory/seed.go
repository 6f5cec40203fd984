package memory

import "github.com/riskibarqy/courtside/internal/domain/court"

const (
	CourtIDCentral   = "court-1"
	CourtIDNorth     = "court-2"
	CourtIDIndoorOld = "court-3"
)

func SeedCourts() []court.Court {
	return []court.Court{
		{ID: CourtIDCentral, Name: "Central Court", Active: true},
		{ID: CourtIDNorth, Name: "North Court", Active: true},
		{ID: CourtIDIndoorOld, Name: "Old Indoor Hall", Active: false},
	}
}
