package entities

import (
	"time"

	"github.com/google/uuid"
)

// User is the local projection of an account managed by the external
// authentication provider. Rows are provisioned from verified token claims.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Email        string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string     `json:"name" gorm:"type:varchar(255);not null;default:''"`
	Role         UserRole   `json:"role" gorm:"type:varchar(50);default:'member';not null"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty" gorm:"type:timestamp"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// UserRole defines user roles
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	}
	return false
}

// NewUserFromClaims builds the local user row for an authenticated subject
func NewUserFromClaims(id uuid.UUID, email, name, role string) *User {
	now := time.Now()
	userRole := UserRole(role)
	if !userRole.IsValid() {
		userRole = RoleMember
	}
	return &User{
		ID:           id,
		Email:        email,
		Name:         name,
		Role:         userRole,
		LastActiveAt: &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAdmin checks if user is admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate validates user data
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	return nil
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
