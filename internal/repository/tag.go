// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	// ResolveNames returns one tag per input name, in input order, creating
	// missing tags. Duplicate names resolve to the same tag.
	ResolveNames(ctx context.Context, names []string) ([]models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
}

// tagRepository implements TagRepository
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) ResolveNames(ctx context.Context, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		tags, txErr = resolveTags(tx, names)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

// resolveTags maps each name to a tag row inside the caller's transaction,
// creating rows that do not exist yet. The result preserves input order;
// duplicate input names yield the same tag twice.
func resolveTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, created, err := findOrCreateTag(tx, name)
		if err != nil {
			return nil, err
		}
		outcome := "existing"
		if created {
			outcome = "created"
		}
		observability.TagResolutions.WithLabelValues(outcome).Inc()
		tags = append(tags, tag)
	}
	return tags, nil
}

// findOrCreateTag inserts with ON CONFLICT DO NOTHING so losing a concurrent
// creation race degrades to reading the winner's row instead of aborting the
// enclosing transaction. The second return value reports whether this call
// created the row.
func findOrCreateTag(tx *gorm.DB, name string) (models.Tag, bool, error) {
	now := time.Now()
	res := tx.Exec(
		"INSERT INTO tags (name, created_at, updated_at) VALUES (?, ?, ?) ON CONFLICT (name) DO NOTHING",
		name, now, now,
	)
	if res.Error != nil {
		return models.Tag{}, false, res.Error
	}
	created := res.RowsAffected == 1

	var tag models.Tag
	if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
		return models.Tag{}, false, err
	}
	return tag, created, nil
}

// isUniqueViolation reports whether err is a unique-constraint violation,
// checking both GORM's translated error and the raw Postgres error code.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
