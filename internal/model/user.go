package model

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies a staff role. It is a closed set; anything outside
// the constants below is rejected at registration time.
type Role string

const (
	RoleHIM      Role = "HIM"
	RoleNurse    Role = "NURSE"
	RoleDoctor   Role = "DOCTOR"
	RolePharmacy Role = "PHARMACY"
)

// Valid reports whether the role is one of the known staff roles
func (r Role) Valid() bool {
	switch r {
	case RoleHIM, RoleNurse, RoleDoctor, RolePharmacy:
		return true
	}
	return false
}

// User represents a staff account. New accounts start with
// Authorized=false and cannot log in until an admin flips it.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Role         Role      `json:"role" db:"role"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Authorized   bool      `json:"authorized" db:"authorized"`
	Active       bool      `json:"active" db:"active"`
	LoginCode    *string   `json:"-" db:"login_code"`
	RefreshToken *string   `json:"-" db:"refresh_token"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// UserProfile is the public projection of a User returned by the API
type UserProfile struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       Role      `json:"role"`
	Phone      string    `json:"phone"`
	Authorized bool      `json:"authorized"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Profile returns the public projection of the user
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		Phone:      u.Phone,
		Authorized: u.Authorized,
		Active:     u.Active,
		CreatedAt:  u.CreatedAt,
	}
}
