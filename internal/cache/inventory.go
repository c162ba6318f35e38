package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix = "post:%d"

	// PostTTL bounds staleness of single-post reads. List queries are
	// intentionally never cached.
	PostTTL = 15 * time.Minute
)

// PostKey returns the cache key for a single post.
func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// Invalidate removes a key. No-op without a connected client.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost removes the cached entry for a post.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
