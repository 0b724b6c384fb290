package dto

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	Gender   *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Role     *string `json:"role" validate:"omitempty,oneof=patient doctor admin"`
	IsActive *bool   `json:"isActive"`
}
