package converter

import (
	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/domain/entity"
)

func BlogPostToResponse(post *entity.BlogPost) *dto.BlogPostResponse {
	if post == nil {
		return nil
	}

	return &dto.BlogPostResponse{
		ID:        post.ID,
		Slug:      post.Slug,
		Title:     post.Title,
		Excerpt:   post.Excerpt,
		Content:   post.Content,
		Image:     post.Image,
		Author:    post.Author,
		Category:  post.Category,
		Featured:  post.Featured,
		ReadTime:  post.ReadTime,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func BlogPostsToResponses(posts []entity.BlogPost) []dto.BlogPostResponse {
	responses := make([]dto.BlogPostResponse, len(posts))
	for i := range posts {
		responses[i] = *BlogPostToResponse(&posts[i])
	}
	return responses
}
