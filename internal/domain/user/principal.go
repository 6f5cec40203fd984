package user

type Role string

const (
	RoleCoach  Role = "coach"
	RolePlayer Role = "player"
)

// Principal is the caller of one request, resolved at the transport edge.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsCoach() bool {
	return p.Role == RoleCoach
}
