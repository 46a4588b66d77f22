package handlers

import (
	"errors"

	"hmc-messhub/internal/adapters/http/middleware"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"
	"hmc-messhub/internal/pkg/pagination"
	"hmc-messhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ForumHandler handles hostel forum endpoints
type ForumHandler struct {
	forumService *services.ForumService
}

// NewForumHandler creates a new forum handler
func NewForumHandler(forumService *services.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

// CreatePost opens a thread on the caller's hostel board
// @Summary Create a forum post
// @Tags Forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePostInput true "Post data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /forum/posts [post]
func (h *ForumHandler) CreatePost(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	post, err := h.forumService.CreatePost(c.Context(), actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrNoHostelAssigned):
			return response.Forbidden(c, "No hostel assigned to your account")
		case errors.Is(err, services.ErrUserBlocked):
			return response.Forbidden(c, "Your account is blocked")
		default:
			return response.InternalServerError(c, "Failed to create post")
		}
	}

	return response.Created(c, "Post created successfully", fiber.Map{
		"post": post,
	})
}

// ListPosts returns the board of one hostel
// @Summary List forum posts
// @Tags Forum
// @Produce json
// @Security BearerAuth
// @Param hostel_id path int true "Hostel ID"
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /forum/hostel/{hostel_id} [get]
func (h *ForumHandler) ListPosts(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	hostelID, err := parseIDParam(c, "hostel_id")
	if err != nil {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	params := pagination.GetParams(c)
	posts, total, err := h.forumService.ListPosts(c.Context(), actor, hostelID, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrHostelMismatch) {
			return response.Forbidden(c, "Board belongs to a different hostel")
		}
		return response.InternalServerError(c, "Failed to list posts")
	}

	return response.Success(c, "Posts retrieved successfully", fiber.Map{
		"posts":      posts,
		"pagination": pagination.GetMeta(params, total),
	})
}

// GetPost returns one thread with comments
// @Summary Get a forum post
// @Tags Forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /forum/posts/{id} [get]
func (h *ForumHandler) GetPost(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid post ID")
	}

	post, err := h.forumService.GetPost(c.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return response.NotFound(c, "Post not found")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "Post belongs to a different hostel")
		default:
			return response.InternalServerError(c, "Failed to get post")
		}
	}

	return response.Success(c, "Post retrieved successfully", fiber.Map{
		"post": post,
	})
}

// AddComment replies to a thread
// @Summary Comment on a post
// @Tags Forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param body body services.CreateCommentInput true "Comment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /forum/posts/{id}/comments [post]
func (h *ForumHandler) AddComment(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid post ID")
	}

	var input services.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	comment, err := h.forumService.AddComment(c.Context(), actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrPostNotFound):
			return response.NotFound(c, "Post not found")
		case errors.Is(err, services.ErrHostelMismatch):
			return response.Forbidden(c, "Post belongs to a different hostel")
		case errors.Is(err, services.ErrUserBlocked):
			return response.Forbidden(c, "Your account is blocked")
		default:
			return response.InternalServerError(c, "Failed to add comment")
		}
	}

	return response.Created(c, "Comment added successfully", fiber.Map{
		"comment": comment,
	})
}

// DeletePost removes a thread
// @Summary Delete a forum post
// @Tags Forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /forum/posts/{id} [delete]
func (h *ForumHandler) DeletePost(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid post ID")
	}

	if err := h.forumService.DeletePost(c.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return response.NotFound(c, "Post not found")
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to delete this post")
		default:
			return response.InternalServerError(c, "Failed to delete post")
		}
	}

	return response.Success(c, "Post deleted successfully", nil)
}

// DeleteComment removes one comment
// @Summary Delete a comment
// @Tags Forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /forum/comments/{id} [delete]
func (h *ForumHandler) DeleteComment(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid comment ID")
	}

	if err := h.forumService.DeleteComment(c.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, services.ErrCommentNotFound):
			return response.NotFound(c, "Comment not found")
		case errors.Is(err, services.ErrPostNotFound):
			return response.NotFound(c, "Post not found")
		case errors.Is(err, services.ErrNotPermitted):
			return response.Forbidden(c, "You don't have permission to delete this comment")
		default:
			return response.InternalServerError(c, "Failed to delete comment")
		}
	}

	return response.Success(c, "Comment deleted successfully", nil)
}
