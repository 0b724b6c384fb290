package dto

import (
	"time"

	"medimeet-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64               `json:"id"`
	UserID    *uuid.UUID          `json:"userId,omitempty"`
	User      *BookingUserSummary `json:"user,omitempty"`
	Action    string              `json:"action"`
	Metadata  entity.JSON         `json:"metadata"`
	CreatedAt time.Time           `json:"createdAt"`
}
