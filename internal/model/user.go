package model

import "time"

// Role is the authorization class of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserStatus governs whether an account may log in.
type UserStatus string

const (
	StatusPending    UserStatus = "pending"
	StatusApproved   UserStatus = "approved"
	StatusRestricted UserStatus = "restricted"
)

// User represents a registered account
type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Do not expose password hash in JSON responses
	FullName     string     `json:"full_name"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsApproved reports whether the account may log in.
func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	FullName string `form:"full_name" binding:"required"`
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// LoginRequest is shared by the user and admin login forms.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	FullName string `form:"full_name" binding:"required"`
	Phone    string `form:"phone"`
	Address  string `form:"address"`
}

// ChangePasswordRequest is the change-password form.
type ChangePasswordRequest struct {
	CurrentPassword string `form:"current_password" binding:"required"`
	NewPassword     string `form:"new_password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
}

// DashboardStats holds the admin dashboard counters.
type DashboardStats struct {
	TotalUsers      int64  `json:"total_users"`
	PendingUsers    int64  `json:"pending_users"`
	RestrictedUsers int64  `json:"restricted_users"`
	PendingList     []User `json:"pending_users_list"`
}
