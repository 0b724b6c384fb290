package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBlogPostRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=255"`
	Slug     string `json:"slug" validate:"omitempty,max=255"`
	Excerpt  string `json:"excerpt" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Image    string `json:"image"`
	Author   string `json:"author" validate:"omitempty,max=255"`
	Category string `json:"category" validate:"omitempty,max=100"`
	Featured bool   `json:"featured"`
	ReadTime string `json:"readTime" validate:"omitempty,max=50"`
}

type UpdateBlogPostRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=3,max=255"`
	Excerpt  *string `json:"excerpt"`
	Content  *string `json:"content"`
	Image    *string `json:"image"`
	Author   *string `json:"author" validate:"omitempty,max=255"`
	Category *string `json:"category" validate:"omitempty,max=100"`
	Featured *bool   `json:"featured"`
	ReadTime *string `json:"readTime" validate:"omitempty,max=50"`
}

type BlogPostResponse struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	Author    string    `json:"author,omitempty"`
	Category  string    `json:"category,omitempty"`
	Featured  bool      `json:"featured"`
	ReadTime  string    `json:"readTime,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BlogPostListResponse struct {
	Posts []BlogPostResponse `json:"posts"`
	Total int                `json:"total"`
}
