package server

import (
	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts?page=&tag=&category=
// @Summary List posts
// @Description Paginated, denormalized post rows with optional tag and category filters
// @Tags posts
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param tag query string false "Filter by exact tag name"
// @Param category query string false "Filter by exact category name"
// @Success 200 {object} map[string]interface{}
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := s.postService.ListPosts(c.UserContext(), service.ListPostsInput{
		// A malformed page number falls back to 1 inside the service.
		Page:     c.QueryInt("page", 1),
		Tag:      c.Query("tag"),
		Category: c.Query("category"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":      page.Rows,
		"pagination": page.Pagination,
	})
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body service.CreatePostInput true "Post payload"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.CreatePostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.notifier.PublishPostEvent(c.UserContext(), notifications.EventPostCreated, post.ID)
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body service.CreatePostInput true "Post payload"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.CreatePostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), id, req)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.notifier.PublishPostEvent(c.UserContext(), notifications.EventPostUpdated, post.ID)
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}

	s.notifier.PublishPostEvent(c.UserContext(), notifications.EventPostDeleted, id)
	return c.SendStatus(fiber.StatusNoContent)
}

// GetTags handles GET /api/tags
// @Summary List tags
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.tagRepo.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tags)
}
