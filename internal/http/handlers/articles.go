package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/neuralpulse/internal/domain/article"
	"github.com/gin-gonic/gin"
)

type ArticlesStore interface {
	UserGetter
	Articles() []article.Article
	GetArticle(id string) (article.Article, bool)
	AddArticle(a article.Article) article.Article
	UpdateArticle(id string, patch article.Patch) (article.Article, error)
	DeleteArticle(id string) error
}

type ArticlesHandler struct {
	store  ArticlesStore
	policy article.DeletePolicy
	now    func() time.Time
}

func NewArticlesHandler(store ArticlesStore, policy article.DeletePolicy) *ArticlesHandler {
	return &ArticlesHandler{
		store:  store,
		policy: policy,
		now:    time.Now,
	}
}

func (h *ArticlesHandler) ListArticles(ctx *gin.Context) {
	actor, ok := currentActor(ctx, h.store)
	if !ok {
		return
	}

	status := ctx.Query("status")
	if status != "" && status != article.StatusPublished && status != article.StatusDraft {
		RespondBadRequest(ctx, "Invalid status filter", gin.H{"status": "must be one of published, draft"})
		return
	}

	items := article.FilterStatus(article.VisibleTo(h.store.Articles(), actor), status)

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *ArticlesHandler) CreateArticle(ctx *gin.Context) {
	actor, ok := currentActor(ctx, h.store)
	if !ok {
		return
	}

	var req article.CreateArticleRequest
	if !BindJSON(ctx, &req) {
		return
	}

	a := h.store.AddArticle(article.NewFromCreateRequest(req, actor, h.now()))

	ctx.JSON(http.StatusCreated, a)
}

func (h *ArticlesHandler) GetArticle(ctx *gin.Context) {
	actor, ok := currentActor(ctx, h.store)
	if !ok {
		return
	}

	a, found := h.store.GetArticle(ctx.Param("id"))
	if !found {
		RespondNotFound(ctx, "Article not found")
		return
	}

	if !a.Published && !article.CanEdit(actor, a) {
		RespondForbidden(ctx, "You cannot view this draft")
		return
	}

	ctx.JSON(http.StatusOK, a)
}

func (h *ArticlesHandler) UpdateArticle(ctx *gin.Context) {
	actor, ok := currentActor(ctx, h.store)
	if !ok {
		return
	}

	id := ctx.Param("id")
	current, found := h.store.GetArticle(id)
	if !found {
		RespondNotFound(ctx, "Article not found")
		return
	}

	if !article.CanEdit(actor, current) {
		RespondForbidden(ctx, "You can only edit your own articles")
		return
	}

	var patch article.Patch
	if !BindJSON(ctx, &patch) {
		return
	}

	// authors cannot hand their articles to someone else
	if !actor.IsAdmin() {
		patch.Author = nil
		patch.AuthorID = nil
	}

	a, err := h.store.UpdateArticle(id, patch)
	if err != nil {
		if errors.Is(err, article.ErrNotFound) {
			RespondNotFound(ctx, "Article not found")
			return
		}
		RespondInternal(ctx, "Could not update article")
		return
	}

	ctx.JSON(http.StatusOK, a)
}

func (h *ArticlesHandler) DeleteArticle(ctx *gin.Context) {
	actor, ok := currentActor(ctx, h.store)
	if !ok {
		return
	}

	id := ctx.Param("id")
	current, found := h.store.GetArticle(id)
	if !found {
		RespondNotFound(ctx, "Article not found")
		return
	}

	if !article.CanDelete(h.policy, actor, current) {
		RespondForbidden(ctx, "You cannot delete this article")
		return
	}

	if err := h.store.DeleteArticle(id); err != nil {
		if errors.Is(err, article.ErrNotFound) {
			RespondNotFound(ctx, "Article not found")
			return
		}
		RespondInternal(ctx, "Could not delete article")
		return
	}

	ctx.Status(http.StatusNoContent)
}
