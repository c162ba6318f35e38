package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type categoryRepoStub struct {
	listFn    func(ctx context.Context) ([]models.Category, error)
	getByIDFn func(ctx context.Context, id uint) (*models.Category, error)
	createFn  func(ctx context.Context, category *models.Category) error
}

func (s *categoryRepoStub) List(ctx context.Context) ([]models.Category, error) {
	return s.listFn(ctx)
}

func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}

func TestCategoryService_CreateCategory_TrimsName(t *testing.T) {
	var created *models.Category
	stub := &categoryRepoStub{
		createFn: func(ctx context.Context, category *models.Category) error {
			category.ID = 1
			created = category
			return nil
		},
	}
	svc := NewCategoryService(stub)

	category, err := svc.CreateCategory(context.Background(), "  Technology  ")
	require.NoError(t, err)
	assert.Equal(t, "Technology", category.Name)
	assert.Equal(t, created, category)
}

func TestCategoryService_CreateCategory_RejectsBlankName(t *testing.T) {
	called := false
	stub := &categoryRepoStub{
		createFn: func(ctx context.Context, category *models.Category) error {
			called = true
			return nil
		},
	}
	svc := NewCategoryService(stub)

	_, err := svc.CreateCategory(context.Background(), "   ")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.False(t, called)
}

func TestCategoryService_CreateCategory_ConflictPassesThrough(t *testing.T) {
	stub := &categoryRepoStub{
		createFn: func(ctx context.Context, category *models.Category) error {
			return models.NewConflictError("A category with this name already exists")
		},
	}
	svc := NewCategoryService(stub)

	_, err := svc.CreateCategory(context.Background(), "Technology")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}
