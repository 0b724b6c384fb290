package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,url"`
	Twitter   string `json:"twitter,omitempty" validate:"omitempty,url"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
}

// CreateDoctorRequest accepts ticketPrice as a JSON string or number.
type CreateDoctorRequest struct {
	Name           string          `json:"name" validate:"required,min=2,max=255"`
	Email          string          `json:"email" validate:"required,email"`
	Phone          string          `json:"phone" validate:"omitempty,max=30"`
	Photo          string          `json:"photo" validate:"omitempty"`
	TicketPrice    decimal.Decimal `json:"ticketPrice"`
	Specialization string          `json:"specialization" validate:"required,max=100"`
	Bio            string          `json:"bio" validate:"omitempty"`
	About          string          `json:"about" validate:"omitempty"`
	Address        string          `json:"address" validate:"omitempty"`
	Featured       bool            `json:"featured"`
	Social         SocialLinks     `json:"social"`
	Certificates   []string        `json:"certificates" validate:"omitempty,dive,max=255"`
}

// UpdateDoctorRequest changes only the fields that are present.
type UpdateDoctorRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=2,max=255"`
	Email          *string          `json:"email" validate:"omitempty,email"`
	Phone          *string          `json:"phone" validate:"omitempty,max=30"`
	Photo          *string          `json:"photo"`
	TicketPrice    *decimal.Decimal `json:"ticketPrice"`
	Specialization *string          `json:"specialization" validate:"omitempty,min=1,max=100"`
	Bio            *string          `json:"bio"`
	About          *string          `json:"about"`
	Address        *string          `json:"address"`
	Featured       *bool            `json:"featured"`
	Social         *SocialLinks     `json:"social"`
	Certificates   []string         `json:"certificates" validate:"omitempty,dive,max=255"`
}

// DoctorListQuery carries the GET /doctors query string.
type DoctorListQuery struct {
	PageQuery
	Specialization string
	Featured       *bool
}

// Response DTOs

type DoctorResponse struct {
	ID             uuid.UUID   `json:"id"`
	UserID         *uuid.UUID  `json:"userId,omitempty"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone,omitempty"`
	Photo          string      `json:"photo,omitempty"`
	TicketPrice    string      `json:"ticketPrice"`
	Specialization string      `json:"specialization"`
	Bio            string      `json:"bio,omitempty"`
	About          string      `json:"about,omitempty"`
	Address        string      `json:"address,omitempty"`
	Featured       bool        `json:"featured"`
	Social         SocialLinks `json:"social"`
	Certificates   []string    `json:"certificates"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

type DoctorListResponse struct {
	Doctors    []DoctorResponse `json:"doctors"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}
