package domain

type Role string

const (
	RoleOwner     Role = "owner"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleMember    Role = "member"
)

// CanDeleteGroup gates destructive group actions before any mutation is
// attempted.
func (r Role) CanDeleteGroup() bool {
	return r == RoleOwner || r == RoleAdmin
}

type User struct {
	ID    string
	Name  string
	Email string
}

type Group struct {
	ID          string
	Name        string
	Description string
	Role        Role
	MemberCount int
}

// Board is the projected view of one group's todos, ready for rendering.
type Board struct {
	GroupID string
	Columns []BoardColumn
}

type BoardColumn struct {
	Key   ColumnKey
	Todos []Todo
}
