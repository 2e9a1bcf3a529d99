package session

// Role separates privileged operators from read-only ones.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleViewer }

// Session identifies the actor behind a request. It is passed explicitly
// into every usecase that mutates state; there is no ambient login state.
type Session struct {
	ActorID string
	Role    Role
}

func (s Session) CanMutate() bool { return s.Role == RoleAdmin }
