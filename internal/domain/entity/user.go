package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserID is the identity of a User.
type UserID = uuid.UUID

// User represents the centralized authentication table
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Gender    string    `gorm:"type:varchar(20)" json:"gender,omitempty"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// RoleName resolves the user's role from the loaded relation, falling back to
// the seeded role IDs.
func (u *User) RoleName() RoleName {
	if u.Role.RoleName != "" {
		return u.Role.RoleName
	}
	name, _ := RoleNameByID(u.RoleID)
	return name
}

// Active reports whether the account may sign in. A nil flag means the column
// default (true) has not been loaded yet.
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}
