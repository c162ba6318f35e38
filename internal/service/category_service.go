package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// CategoryService manages the category vocabulary.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories returns all categories ordered by name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateCategory adds a new category with a unique name.
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Category name is required")
	}
	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}
