package handler

import (
	"net/http"

	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/domain/entity"
	"medimeet-api/internal/usecase"
	"medimeet-api/pkg/response"
	"medimeet-api/pkg/validator"

	"github.com/gorilla/mux"
)

type BlogPostHandler struct {
	blogPostUsecase usecase.BlogPostUsecase
	validator       *validator.CustomValidator
}

func NewBlogPostHandler(blogPostUsecase usecase.BlogPostUsecase, validator *validator.CustomValidator) *BlogPostHandler {
	return &BlogPostHandler{
		blogPostUsecase: blogPostUsecase,
		validator:       validator,
	}
}

// CreatePost handles blog post creation
// @Summary Create blog post
// @Tags Blog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBlogPostRequest true "Create Blog Post Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /blog [post]
func (h *BlogPostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBlogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	post, err := h.blogPostUsecase.CreatePost(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSlug:
			response.BadRequest(w, err.Error())
		case usecase.ErrSlugExists:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create blog post")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Blog post created successfully", post)
}

// GetPosts handles blog post listing
// @Summary List blog posts
// @Tags Blog
// @Produce json
// @Param category query string false "Filter by category"
// @Param featured query bool false "Filter by featured flag"
// @Success 200 {object} response.Response
// @Router /blog [get]
func (h *BlogPostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.BlogPostFilter{
		Category: q.Get("category"),
		Featured: optionalBool(q.Get("featured")),
	}

	posts, err := h.blogPostUsecase.GetPosts(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get blog posts")
		return
	}

	response.Success(w, http.StatusOK, "Blog posts retrieved successfully", posts)
}

// GetPost handles fetching a blog post by slug
// @Summary Get blog post
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /blog/{slug} [get]
func (h *BlogPostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.blogPostUsecase.GetPostBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		if err == usecase.ErrBlogPostNotFound {
			response.NotFound(w, "Blog post not found")
			return
		}
		response.InternalServerError(w, "Failed to get blog post")
		return
	}

	response.Success(w, http.StatusOK, "Blog post retrieved successfully", post)
}

// UpdatePost handles blog post updates
// @Summary Update blog post
// @Tags Blog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body dto.UpdateBlogPostRequest true "Update Blog Post Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /blog/{id} [put]
func (h *BlogPostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid blog post ID", nil)
		return
	}

	var req dto.UpdateBlogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	post, err := h.blogPostUsecase.UpdatePost(r.Context(), id, &req)
	if err != nil {
		if err == usecase.ErrBlogPostNotFound {
			response.NotFound(w, "Blog post not found")
			return
		}
		response.InternalServerError(w, "Failed to update blog post")
		return
	}

	response.Success(w, http.StatusOK, "Blog post updated successfully", post)
}

// DeletePost handles blog post deletion
// @Summary Delete blog post
// @Tags Blog
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /blog/{id} [delete]
func (h *BlogPostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid blog post ID", nil)
		return
	}

	if err := h.blogPostUsecase.DeletePost(r.Context(), id); err != nil {
		if err == usecase.ErrBlogPostNotFound {
			response.NotFound(w, "Blog post not found")
			return
		}
		response.InternalServerError(w, "Failed to delete blog post")
		return
	}

	response.Success(w, http.StatusOK, "Blog post deleted successfully", nil)
}
