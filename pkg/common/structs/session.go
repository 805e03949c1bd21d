package structs

// Role identifies what a session is allowed to see.
type Role string

const (
	RoleUser       Role = "USER"
	RoleStoreOwner Role = "STORE_OWNER"
	RoleAdmin      Role = "ADMIN"
)

// Session is the authenticated identity plus bearer credential held by the
// client. It mirrors the payload persisted by the credential store.
type Session struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Token string `json:"token,omitempty"`
}

// IsAdmin reports whether the session belongs to an authenticated admin. A
// session without a token cannot make authenticated calls and never counts.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin && s.Token != ""
}
