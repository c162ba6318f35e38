package service

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type postRepoStub struct {
	listFn    func(ctx context.Context, filter repository.PostFilter, page int) (*models.PostPage, error)
	getByIDFn func(ctx context.Context, id uint) (*models.Post, error)
	createFn  func(ctx context.Context, authorID uint, in repository.PostInput) (*models.Post, error)
	updateFn  func(ctx context.Context, id uint, in repository.PostInput) (*models.Post, error)
	deleteFn  func(ctx context.Context, id uint) error
}

func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter, page int) (*models.PostPage, error) {
	return s.listFn(ctx, filter, page)
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}

func (s *postRepoStub) Create(ctx context.Context, authorID uint, in repository.PostInput) (*models.Post, error) {
	return s.createFn(ctx, authorID, in)
}

func (s *postRepoStub) Update(ctx context.Context, id uint, in repository.PostInput) (*models.Post, error) {
	return s.updateFn(ctx, id, in)
}

func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func uintPtr(v uint) *uint { return &v }

func TestValidatePostInput(t *testing.T) {
	tests := []struct {
		name    string
		input   CreatePostInput
		wantErr string
	}{
		{
			name:  "valid minimal",
			input: CreatePostInput{Title: "abc", Content: "0123456789"},
		},
		{
			name:  "valid with category and tags",
			input: CreatePostInput{Title: "A fine title", Content: "Long enough content", CategoryID: uintPtr(2), Tags: []string{"go", "web"}},
		},
		{
			name:    "title too short",
			input:   CreatePostInput{Title: "ab", Content: "0123456789"},
			wantErr: "Title must be between 3 and 255 characters",
		},
		{
			name:    "title too long",
			input:   CreatePostInput{Title: stringOfLen(256), Content: "0123456789"},
			wantErr: "Title must be between 3 and 255 characters",
		},
		{
			name:    "content too short",
			input:   CreatePostInput{Title: "abc", Content: "012345678"},
			wantErr: "Content must be at least 10 characters",
		},
		{
			name:    "zero category id",
			input:   CreatePostInput{Title: "abc", Content: "0123456789", CategoryID: uintPtr(0)},
			wantErr: "categoryId must be a positive integer",
		},
		{
			name:    "blank tag name",
			input:   CreatePostInput{Title: "abc", Content: "0123456789", Tags: []string{"go", "  "}},
			wantErr: "Tag names must be non-empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePostInput(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.Equal(t, tt.wantErr, appErr.Message)
		})
	}
}

func stringOfLen(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}

func TestPostService_ListPosts_PageDefault(t *testing.T) {
	var gotPage int
	var gotFilter repository.PostFilter
	stub := &postRepoStub{
		listFn: func(ctx context.Context, filter repository.PostFilter, page int) (*models.PostPage, error) {
			gotPage = page
			gotFilter = filter
			return &models.PostPage{}, nil
		},
	}
	svc := NewPostService(stub)

	_, err := svc.ListPosts(context.Background(), ListPostsInput{Page: 0, Tag: "ai", Category: "Tech"})
	require.NoError(t, err)
	assert.Equal(t, 1, gotPage)
	assert.Equal(t, repository.PostFilter{Tag: "ai", Category: "Tech"}, gotFilter)

	_, err = svc.ListPosts(context.Background(), ListPostsInput{Page: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, gotPage)
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	stub := &postRepoStub{
		getByIDFn: func(ctx context.Context, id uint) (*models.Post, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewPostService(stub)

	_, err := svc.GetPost(context.Background(), 42)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostService_CreatePost(t *testing.T) {
	var gotAuthor uint
	var gotInput repository.PostInput
	stub := &postRepoStub{
		createFn: func(ctx context.Context, authorID uint, in repository.PostInput) (*models.Post, error) {
			gotAuthor = authorID
			gotInput = in
			return &models.Post{ID: 1, Title: in.Title}, nil
		},
	}
	svc := NewPostService(stub)

	post, err := svc.CreatePost(context.Background(), 7, CreatePostInput{
		Title:   "My first post",
		Content: "Some valid content here",
		Tags:    []string{"intro"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), gotAuthor)
	assert.Equal(t, []string{"intro"}, gotInput.Tags)
	assert.Equal(t, "My first post", post.Title)
}

func TestPostService_CreatePost_ValidationRejectsBeforeRepo(t *testing.T) {
	called := false
	stub := &postRepoStub{
		createFn: func(ctx context.Context, authorID uint, in repository.PostInput) (*models.Post, error) {
			called = true
			return nil, nil
		},
	}
	svc := NewPostService(stub)

	_, err := svc.CreatePost(context.Background(), 7, CreatePostInput{Title: "x", Content: "y"})
	require.Error(t, err)
	assert.False(t, called)
}

func TestPostService_CreatePost_ConflictPassesThrough(t *testing.T) {
	conflict := models.NewConflictError("A post with this title already exists")
	stub := &postRepoStub{
		createFn: func(ctx context.Context, authorID uint, in repository.PostInput) (*models.Post, error) {
			return nil, conflict
		},
	}
	svc := NewPostService(stub)

	_, err := svc.CreatePost(context.Background(), 7, CreatePostInput{
		Title:   "My first post",
		Content: "Some valid content here",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestPostService_UpdatePost_NotFound(t *testing.T) {
	stub := &postRepoStub{
		updateFn: func(ctx context.Context, id uint, in repository.PostInput) (*models.Post, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewPostService(stub)

	_, err := svc.UpdatePost(context.Background(), 42, CreatePostInput{
		Title:   "Renamed",
		Content: "Still valid content",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Contains(t, appErr.Message, "42")
}

func TestPostService_DeletePost_NotFound(t *testing.T) {
	stub := &postRepoStub{
		deleteFn: func(ctx context.Context, id uint) error {
			return gorm.ErrRecordNotFound
		},
	}
	svc := NewPostService(stub)

	err := svc.DeletePost(context.Background(), 42)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
