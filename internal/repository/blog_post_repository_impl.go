package repository

import (
	"context"
	"errors"

	"medimeet-api/internal/domain/entity"
	domainRepo "medimeet-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type blogPostRepository struct {
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) domainRepo.BlogPostRepository {
	return &blogPostRepository{db: db}
}

func (r *blogPostRepository) Create(ctx context.Context, post *entity.BlogPost) error {
	return translateError(r.db.WithContext(ctx).Create(post).Error)
}

func (r *blogPostRepository) FindAll(ctx context.Context, filter entity.BlogPostFilter) ([]entity.BlogPost, error) {
	var posts []entity.BlogPost
	query := r.db.WithContext(ctx)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *blogPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BlogPost, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *blogPostRepository) FindBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

func (r *blogPostRepository) findOne(ctx context.Context, query string, arg interface{}) (*entity.BlogPost, error) {
	var post entity.BlogPost
	err := r.db.WithContext(ctx).Where(query, arg).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepository) Update(ctx context.Context, post *entity.BlogPost) error {
	return translateError(r.db.WithContext(ctx).Save(post).Error)
}

func (r *blogPostRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.BlogPost{})
	return result.RowsAffected, result.Error
}
