package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryService.ListCategories(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(categories)
}

// CreateCategory handles POST /api/categories
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Success 201 {object} models.Category
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.CreateCategory(c.UserContext(), req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}
