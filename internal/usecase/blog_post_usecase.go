package usecase

import (
	"context"
	"errors"
	"strings"

	"medimeet-api/internal/converter"
	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/domain/entity"
	"medimeet-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrBlogPostNotFound = errors.New("blog post not found")
	ErrSlugExists       = errors.New("a blog post with this slug already exists")
	ErrInvalidSlug      = errors.New("slug must contain letters or digits")
)

type BlogPostUsecase interface {
	CreatePost(ctx context.Context, req *dto.CreateBlogPostRequest) (*dto.BlogPostResponse, error)
	GetPosts(ctx context.Context, filter entity.BlogPostFilter) (*dto.BlogPostListResponse, error)
	GetPostBySlug(ctx context.Context, slug string) (*dto.BlogPostResponse, error)
	UpdatePost(ctx context.Context, id uuid.UUID, req *dto.UpdateBlogPostRequest) (*dto.BlogPostResponse, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
}

type blogPostUsecase struct {
	log          *logrus.Logger
	blogPostRepo repository.BlogPostRepository
}

func NewBlogPostUsecase(log *logrus.Logger, blogPostRepo repository.BlogPostRepository) BlogPostUsecase {
	return &blogPostUsecase{
		log:          log,
		blogPostRepo: blogPostRepo,
	}
}

// CreatePost stores a post under an explicit slug or one derived from the
// title. Slugs never change afterwards.
func (u *blogPostUsecase) CreatePost(ctx context.Context, req *dto.CreateBlogPostRequest) (*dto.BlogPostResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = req.Title
	}
	slug = entity.Slugify(slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	post := &entity.BlogPost{
		Slug:     slug,
		Title:    strings.TrimSpace(req.Title),
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Image:    req.Image,
		Author:   req.Author,
		Category: req.Category,
		Featured: req.Featured,
		ReadTime: req.ReadTime,
	}

	if err := u.blogPostRepo.Create(ctx, post); err != nil {
		if repository.IsDuplicate(err, repository.ConstraintBlogSlug) {
			return nil, ErrSlugExists
		}
		u.log.Warnf("Failed to create blog post: %+v", err)
		return nil, err
	}

	return converter.BlogPostToResponse(post), nil
}

func (u *blogPostUsecase) GetPosts(ctx context.Context, filter entity.BlogPostFilter) (*dto.BlogPostListResponse, error) {
	posts, err := u.blogPostRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find blog posts: %+v", err)
		return nil, err
	}

	return &dto.BlogPostListResponse{
		Posts: converter.BlogPostsToResponses(posts),
		Total: len(posts),
	}, nil
}

func (u *blogPostUsecase) GetPostBySlug(ctx context.Context, slug string) (*dto.BlogPostResponse, error) {
	post, err := u.blogPostRepo.FindBySlug(ctx, slug)
	if err != nil {
		u.log.Warnf("Failed to find blog post %s: %+v", slug, err)
		return nil, err
	}
	if post == nil {
		return nil, ErrBlogPostNotFound
	}

	return converter.BlogPostToResponse(post), nil
}

func (u *blogPostUsecase) UpdatePost(ctx context.Context, id uuid.UUID, req *dto.UpdateBlogPostRequest) (*dto.BlogPostResponse, error) {
	post, err := u.blogPostRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find blog post %s: %+v", id, err)
		return nil, err
	}
	if post == nil {
		return nil, ErrBlogPostNotFound
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Image != nil {
		post.Image = *req.Image
	}
	if req.Author != nil {
		post.Author = *req.Author
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Featured != nil {
		post.Featured = *req.Featured
	}
	if req.ReadTime != nil {
		post.ReadTime = *req.ReadTime
	}

	if err := u.blogPostRepo.Update(ctx, post); err != nil {
		u.log.Warnf("Failed to update blog post %s: %+v", id, err)
		return nil, err
	}

	return converter.BlogPostToResponse(post), nil
}

func (u *blogPostUsecase) DeletePost(ctx context.Context, id uuid.UUID) error {
	rows, err := u.blogPostRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete blog post %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrBlogPostNotFound
	}
	return nil
}
