package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorID is the identity of a Doctor.
type DoctorID = uuid.UUID

// Doctor is a bookable practitioner profile. It is managed by admins and may be
// linked to a doctor-role User account through doctor sign-up.
type Doctor struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         *uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Email          string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone          string          `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Photo          string          `gorm:"type:text" json:"photo,omitempty"`
	TicketPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"ticket_price"`
	Specialization string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Bio            string          `gorm:"type:text" json:"bio,omitempty"`
	About          string          `gorm:"type:text" json:"about,omitempty"`
	Address        string          `gorm:"type:text" json:"address,omitempty"`
	Featured       bool            `gorm:"not null;default:false;index" json:"featured"`
	Social         SocialLinks     `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	Certificates   StringList      `gorm:"type:jsonb" json:"certificates"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

type SocialLinks struct {
	Facebook  string `gorm:"type:text" json:"facebook,omitempty"`
	Twitter   string `gorm:"type:text" json:"twitter,omitempty"`
	Instagram string `gorm:"type:text" json:"instagram,omitempty"`
}

// DoctorFilter narrows doctor listings.
type DoctorFilter struct {
	Specialization string
	Featured       *bool
}

// StringList stores a list of strings as a JSONB array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal string list value: %v", value)
	}

	var out []string
	if err := json.Unmarshal(bytes, &out); err != nil {
		return err
	}
	*l = out
	return nil
}
