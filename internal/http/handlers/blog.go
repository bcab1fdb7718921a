package handlers

import (
	"net/http"
	"sync"

	"github.com/geocoder89/neuralpulse/internal/cache"
	"github.com/geocoder89/neuralpulse/internal/domain/article"
	"github.com/geocoder89/neuralpulse/internal/utils"
	"github.com/gin-gonic/gin"
)

const relatedPosts = 2

type BlogStore interface {
	Articles() []article.Article
	PublishedBySlug(slug string) (article.Article, bool)
}

// BlogHandler serves the public, read-only view of published articles.
// Responses are cached until Invalidate is called.
type BlogHandler struct {
	store BlogStore
	cache *cache.Cache

	// mu orders cache fills against Invalidate; gen counts invalidations so a
	// fill built from a read that raced a write is dropped.
	mu  sync.Mutex
	gen uint64
}

func NewBlogHandler(store BlogStore, c *cache.Cache) *BlogHandler {
	return &BlogHandler{store: store, cache: c}
}

type blogPostResponse struct {
	Post    article.Article   `json:"post"`
	Related []article.Article `json:"related"`
}

// Invalidate drops every cached blog response. It is called after each store
// write.
func (h *BlogHandler) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.gen++
	if h.cache != nil {
		h.cache.DeletePrefix(utils.BlogCachePrefix())
	}
}

func (h *BlogHandler) generation() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gen
}

func (h *BlogHandler) ListPosts(ctx *gin.Context) {
	key := utils.BuildBlogListCacheKey()
	if h.serveCached(ctx, key) {
		return
	}

	gen := h.generation()
	items := article.Published(h.store.Articles())
	h.respond(ctx, key, gen, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *BlogHandler) GetPost(ctx *gin.Context) {
	slug := ctx.Param("slug")
	key := utils.BuildBlogPostCacheKey(slug)
	if h.serveCached(ctx, key) {
		return
	}

	gen := h.generation()
	post, ok := h.store.PublishedBySlug(slug)
	if !ok {
		RespondNotFound(ctx, "Post not found")
		return
	}

	h.respond(ctx, key, gen, blogPostResponse{
		Post:    post,
		Related: article.Related(h.store.Articles(), post, relatedPosts),
	})
}

func (h *BlogHandler) serveCached(ctx *gin.Context, key string) bool {
	if h.cache == nil {
		return false
	}
	v, ok := h.cache.Get(key)
	if !ok {
		return false
	}
	res, ok := v.(etaggedJSON)
	if !ok {
		return false
	}
	writeETagged(ctx, http.StatusOK, res)
	return true
}

// respond caches payload only when no invalidation happened since gen was
// read; the response itself is still served.
func (h *BlogHandler) respond(ctx *gin.Context, key string, gen uint64, payload interface{}) {
	res, err := encodeETagged(payload)
	if err != nil {
		RespondInternal(ctx, "Failed to encode response")
		return
	}

	if h.cache != nil {
		h.mu.Lock()
		if h.gen == gen {
			h.cache.Set(key, res)
		}
		h.mu.Unlock()
	}
	writeETagged(ctx, http.StatusOK, res)
}
