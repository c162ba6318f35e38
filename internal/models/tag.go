package models

import "time"

// Tag is a shared label entity, many-to-many with Post. Tag names are
// case-sensitive and unique; the uniqueness constraint is what arbitrates
// concurrent find-or-create attempts.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Tag) TableName() string {
	return "tags"
}

// PostTag is the posts<->tags join row. It has no identity of its own;
// the (post, tag) pair is the primary key.
type PostTag struct {
	PostID uint `gorm:"primaryKey" json:"postId"`
	TagID  uint `gorm:"primaryKey" json:"tagId"`
}

// TableName specifies the table name for GORM.
func (PostTag) TableName() string {
	return "post_tags"
}
