package structs

// User is a normal platform user as returned by the admin API.
type User struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address string  `json:"address,omitempty"`
	Role    Role    `json:"role,omitempty"`
	Rating  float64 `json:"rating,omitempty"`
}

// Admin is a system administrator record.
type Admin struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

// AvailableOwner is a store owner without an assigned store, eligible to be
// attached to a newly created store.
type AvailableOwner struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUserInput is the payload for POST /admin/users. Role decides which
// collection the created record lands in.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address,omitempty"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// UserFilters narrows GET /admin/users server-side.
type UserFilters struct {
	Name    string
	Email   string
	Address string
	Role    Role
}
