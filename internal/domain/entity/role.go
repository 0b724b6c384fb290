package entity

// Role represents a user role in the system
type Role struct {
	ID          int      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    RoleName `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string   `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// RoleName is the stable name of a role as exposed in tokens and query strings.
type RoleName string

const (
	RoleAdmin   RoleName = "admin"
	RoleDoctor  RoleName = "doctor"
	RolePatient RoleName = "patient"
)

// Role ID constants, seeded by the initial migration.
const (
	RoleIDAdmin   = 1
	RoleIDDoctor  = 2
	RoleIDPatient = 3
)

// RoleNameByID maps a seeded role ID to its name.
func RoleNameByID(id int) (RoleName, bool) {
	switch id {
	case RoleIDAdmin:
		return RoleAdmin, true
	case RoleIDDoctor:
		return RoleDoctor, true
	case RoleIDPatient:
		return RolePatient, true
	}
	return "", false
}

// ParseRoleName validates a role name coming from outside the system.
func ParseRoleName(s string) (RoleName, bool) {
	switch RoleName(s) {
	case RoleAdmin, RoleDoctor, RolePatient:
		return RoleName(s), true
	}
	return "", false
}

// Actor identifies the authenticated caller of a usecase.
type Actor struct {
	UserID UserID
	Role   RoleName
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
