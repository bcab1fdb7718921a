package utils

import "strings"

const blogCachePrefix = "blog:v1:"

func BuildBlogListCacheKey() string {
	return blogCachePrefix + "list"
}

func BuildBlogPostCacheKey(slug string) string {
	return blogCachePrefix + "post:slug=" + strings.TrimSpace(slug)
}

// BlogCachePrefix matches every blog key; used to invalidate on writes.
func BlogCachePrefix() string {
	return blogCachePrefix
}
