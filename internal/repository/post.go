package repository

import (
	"context"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// PageSize is the fixed number of post rows per list page.
const PageSize = 10

// PostFilter holds the optional list filters. Zero values impose no constraint.
type PostFilter struct {
	Tag      string
	Category string
}

// PostInput carries the validated scalar fields of a create/update request.
type PostInput struct {
	Title      string
	Content    string
	CategoryID *uint
	Tags       []string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context, filter PostFilter, page int) (*models.PostPage, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, authorID uint, in PostInput) (*models.Post, error)
	Update(ctx context.Context, id uint, in PostInput) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// clause is one predicate of the list filter, compiled to "column op ?" with
// the value passed through parameter binding. Values never reach the SQL text.
type clause struct {
	column string
	op     string
	value  any
}

func (f PostFilter) clauses() []clause {
	var cs []clause
	if f.Category != "" {
		cs = append(cs, clause{column: "c.name", op: "=", value: f.Category})
	}
	if f.Tag != "" {
		cs = append(cs, clause{column: "t.name", op: "=", value: f.Tag})
	}
	return cs
}

// compileWhere renders the clauses as an AND-combined WHERE fragment plus the
// bound arguments, in clause order.
func compileWhere(cs []clause) (string, []any) {
	var b strings.Builder
	b.WriteString("WHERE 1=1")
	args := make([]any, 0, len(cs))
	for _, c := range cs {
		b.WriteString(" AND ")
		b.WriteString(c.column)
		b.WriteString(" ")
		b.WriteString(c.op)
		b.WriteString(" ?")
		args = append(args, c.value)
	}
	return b.String(), args
}

// tagAggExpr is the dialect-specific aggregate joining the distinct tag names
// of a post into one comma-separated string ("" when the post has no tags).
func (r *postRepository) tagAggExpr() string {
	if r.db.Dialector.Name() == "sqlite" {
		return "COALESCE(GROUP_CONCAT(DISTINCT t.name), '')"
	}
	return "COALESCE(STRING_AGG(DISTINCT t.name, ','), '')"
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, page int) (*models.PostPage, error) {
	defer observability.TrackQuery("list", "posts")()

	if page < 1 {
		page = 1
	}

	where, args := compileWhere(filter.clauses())
	base := `FROM posts p
		LEFT JOIN users u ON u.id = p.user_id
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN post_tags pt ON pt.post_id = p.id
		LEFT JOIN tags t ON t.id = pt.tag_id
		` + where

	var total int64
	if err := r.db.WithContext(ctx).
		Raw("SELECT COUNT(DISTINCT p.id) "+base, args...).
		Scan(&total).Error; err != nil {
		return nil, err
	}

	rows := make([]models.PostRow, 0, PageSize)
	query := `SELECT p.id, p.title, p.content, p.created_at, u.username,
		c.id AS category_id, c.name AS category,
		` + r.tagAggExpr() + ` AS tags
		` + base + `
		GROUP BY p.id, p.title, p.content, p.created_at, u.username, c.id, c.name
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ? OFFSET ?`
	listArgs := append(append([]any{}, args...), PageSize, (page-1)*PageSize)
	if err := r.db.WithContext(ctx).Raw(query, listArgs...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	return &models.PostPage{
		Rows: rows,
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalPosts:  total,
		},
	}, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("User").
			Preload("Category").
			Preload("Tags").
			First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, authorID uint, in PostInput) (*models.Post, error) {
	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		UserID:     authorID,
		CategoryID: in.CategoryID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return translatePostWriteError(err)
		}
		if len(in.Tags) == 0 {
			return nil
		}
		tags, err := resolveTags(tx, in.Tags)
		if err != nil {
			return err
		}
		return replacePostTags(tx, post.ID, tags)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, post.ID)
}

func (r *postRepository) Update(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Post
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}

		// Full overwrite of the scalar fields; partial updates are not supported.
		updates := map[string]any{
			"title":       in.Title,
			"content":     in.Content,
			"category_id": in.CategoryID,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return translatePostWriteError(err)
		}

		// An empty tag list leaves existing associations untouched; a non-empty
		// list fully replaces them. Callers cannot clear tags with [].
		if len(in.Tags) == 0 {
			return nil
		}
		tags, err := resolveTags(tx, in.Tags)
		if err != nil {
			return err
		}
		return replacePostTags(tx, id, tags)
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidatePost(ctx, id)
	return r.GetByID(ctx, id)
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Post
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})
	if err != nil {
		return err
	}

	cache.InvalidatePost(ctx, id)
	return nil
}

// replacePostTags swaps the complete association set for a post: delete-all
// then insert the deduplicated resolved set, all inside the caller's
// transaction so readers never observe the intermediate zero-tag state.
func replacePostTags(tx *gorm.DB, postID uint, tags []models.Tag) error {
	if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", postID).Error; err != nil {
		return err
	}

	seen := make(map[uint]struct{}, len(tags))
	links := make([]models.PostTag, 0, len(tags))
	for _, t := range tags {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		links = append(links, models.PostTag{PostID: postID, TagID: t.ID})
	}
	if len(links) == 0 {
		return nil
	}
	return tx.Create(&links).Error
}

// translatePostWriteError maps a unique violation on the title column to the
// application's conflict error; anything else passes through unchanged.
func translatePostWriteError(err error) error {
	if isUniqueViolation(err) {
		return models.NewConflictError("A post with this title already exists")
	}
	return err
}
