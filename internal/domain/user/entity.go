package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the conference role of an account.
type Role string

const (
	RoleDelegate Role = "DELEGATE"
	RoleEB       Role = "EB"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleDelegate || r == RoleEB
}

// User represents the users table
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(64);uniqueIndex:idx_users_username;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	Portfolio    string    `gorm:"type:varchar(128);not null"`
	Committee    string    `gorm:"type:varchar(64);index:idx_users_committee_role,priority:1;not null"`
	Role         Role      `gorm:"type:varchar(16);index:idx_users_committee_role,priority:2;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

// IsEB reports whether the user moderates a committee.
func (u User) IsEB() bool {
	return u.Role == RoleEB
}
