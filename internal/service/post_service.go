// Package service contains the application's business logic layer.
package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

const (
	minTitleLen   = 3
	maxTitleLen   = 255
	minContentLen = 10
)

// PostService validates post requests and translates store errors.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput is the validated payload shape for create and update.
type CreatePostInput struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CategoryID *uint    `json:"categoryId"`
	Tags       []string `json:"tags"`
}

// ListPostsInput holds the optional list parameters.
type ListPostsInput struct {
	Page     int
	Tag      string
	Category string
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func validatePostInput(in CreatePostInput) error {
	titleLen := utf8.RuneCountInString(in.Title)
	if titleLen < minTitleLen || titleLen > maxTitleLen {
		return models.NewValidationError("Title must be between 3 and 255 characters")
	}
	if utf8.RuneCountInString(in.Content) < minContentLen {
		return models.NewValidationError("Content must be at least 10 characters")
	}
	if in.CategoryID != nil && *in.CategoryID == 0 {
		return models.NewValidationError("categoryId must be a positive integer")
	}
	for _, tag := range in.Tags {
		if strings.TrimSpace(tag) == "" {
			return models.NewValidationError("Tag names must be non-empty")
		}
	}
	return nil
}

// ListPosts returns one page of denormalized post rows. An absent or invalid
// page number falls back to the first page rather than erroring.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*models.PostPage, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	filter := repository.PostFilter{Tag: in.Tag, Category: in.Category}
	return s.postRepo.List(ctx, filter, page)
}

// GetPost returns the fully denormalized post or NotFound.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return post, nil
}

// CreatePost persists a new post for the given author, resolving and
// attaching its tag set.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, in CreatePostInput) (*models.Post, error) {
	if err := validatePostInput(in); err != nil {
		return nil, err
	}
	return s.postRepo.Create(ctx, authorID, repository.PostInput{
		Title:      in.Title,
		Content:    in.Content,
		CategoryID: in.CategoryID,
		Tags:       in.Tags,
	})
}

// UpdatePost overwrites the scalar fields of an existing post. A non-empty
// tag list replaces the complete association set; an empty one leaves it as is.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in CreatePostInput) (*models.Post, error) {
	if err := validatePostInput(in); err != nil {
		return nil, err
	}
	post, err := s.postRepo.Update(ctx, id, repository.PostInput{
		Title:      in.Title,
		Content:    in.Content,
		CategoryID: in.CategoryID,
		Tags:       in.Tags,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and its tag associations.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", id)
		}
		return err
	}
	return nil
}
