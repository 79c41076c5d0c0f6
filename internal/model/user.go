package model

const (
	RoleAdmin = "admin"
	RoleSales = "sales"
)

// User represents a dashboard account (table users)
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Do not expose password hash in JSON responses
	Role         string `json:"role"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// LoginRequest is the payload of POST /api/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the public user fields and, in token mode, a bearer token
type LoginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token,omitempty"`
}

// CreateUserRequest is used by admins to add an account
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=admin sales"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateUserRequest replaces a user's profile. An empty password keeps the current hash.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=admin sales"`
	Password string `json:"password" binding:"omitempty,min=6"`
}
