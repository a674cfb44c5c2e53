package model

// Role values for registered accounts.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is a registered account. Passwords are stored and compared as plain
// strings — this system runs as a single trusted session with fixed seed
// credentials, there is no real authentication layer.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
}

// UserUpdate is a partial update: nil fields are left untouched.
type UserUpdate struct {
	Username *string
	Password *string
	Role     *string
	Email    *string
}
