package models

import "time"

// Post represents a blog post. Title is globally unique; the store's
// constraint is the source of truth and a duplicate fails the write.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	CategoryID *uint     `gorm:"index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags       []Tag     `gorm:"many2many:post_tags" json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// PostRow is a denormalized list row: the post flattened with its author
// username, category and the comma-joined distinct tag names. Tags is ""
// (not null) for a post without tags; Category/CategoryID are null for a
// post without a category.
type PostRow struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"createdAt"`
	Username   string    `json:"username"`
	CategoryID *uint     `gorm:"column:category_id" json:"categoryId"`
	Category   *string   `json:"category"`
	Tags       string    `json:"tags"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalPosts  int64 `json:"totalPosts"`
}

// PostPage is one page of denormalized post rows.
type PostPage struct {
	Rows       []PostRow
	Pagination Pagination
}
