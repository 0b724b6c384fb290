package repository

import (
	"context"

	"medimeet-api/internal/domain/entity"

	"github.com/google/uuid"
)

type BlogPostRepository interface {
	Create(ctx context.Context, post *entity.BlogPost) error
	FindAll(ctx context.Context, filter entity.BlogPostFilter) ([]entity.BlogPost, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*entity.BlogPost, error)
	Update(ctx context.Context, post *entity.BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
