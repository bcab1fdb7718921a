package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/geocoder89/neuralpulse/internal/domain/article"
	"github.com/geocoder89/neuralpulse/internal/domain/user"
	"github.com/geocoder89/neuralpulse/internal/http/handlers"
)

var otherAuthor = user.User{ID: "3", Username: "other", Role: user.RoleAuthor, Name: "Other Author"}

func ownedArticle() article.Article {
	return article.Article{ID: "a1", Title: "Mine", AuthorID: authorUser.ID, Author: authorUser.Name}
}

func TestCreateArticleHandler_TakesAuthorFromCaller(t *testing.T) {
	var added article.Article

	store := newFakeStore()
	store.addArticleFn = func(a article.Article) article.Article {
		added = a
		a.ID = "new-id"
		return a
	}

	h := handlers.NewArticlesHandler(store, article.DeleteByOwner)
	r := setupRouter(http.MethodPost, "/articles", asUser(authorUser.ID), h.CreateArticle)

	w := serve(r, http.MethodPost, "/articles", `{"title":"Transformers Explained","authorId":"1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	if added.AuthorID != authorUser.ID || added.Author != authorUser.Name {
		t.Fatalf("author not taken from caller: %+v", added)
	}
	if added.Slug != "transformers-explained" {
		t.Fatalf("unexpected slug %q", added.Slug)
	}
	if _, err := time.Parse("January 2, 2006", added.Date); err != nil {
		t.Fatalf("unexpected date %q: %v", added.Date, err)
	}

	var resp article.Article
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.ID != "new-id" {
		t.Fatalf("unexpected response %s (%v)", w.Body.String(), err)
	}
}

func TestUpdateArticleHandler(t *testing.T) {
	tests := []struct {
		name           string
		actorID        string
		body           string
		storeSetUp     func(*fakeStore)
		wantStatusCode int
	}{
		{
			name:    "owner_success",
			actorID: authorUser.ID,
			body:    `{"title":"Renamed"}`,
			storeSetUp: func(f *fakeStore) {
				f.getArticleFn = func(id string) (article.Article, bool) { return ownedArticle(), true }
				f.updateArticleFn = func(id string, patch article.Patch) (article.Article, error) {
					return patch.Apply(ownedArticle()), nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:    "not_owner",
			actorID: otherAuthor.ID,
			body:    `{"title":"Renamed"}`,
			storeSetUp: func(f *fakeStore) {
				f.getArticleFn = func(id string) (article.Article, bool) { return ownedArticle(), true }
			},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:           "not_found",
			actorID:        adminUser.ID,
			body:           `{"title":"Renamed"}`,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:    "validation_error",
			actorID: adminUser.ID,
			body:    `{"title":""}`,
			storeSetUp: func(f *fakeStore) {
				f.getArticleFn = func(id string) (article.Article, bool) { return ownedArticle(), true }
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:    "store_error",
			actorID: adminUser.ID,
			body:    `{"title":"Renamed"}`,
			storeSetUp: func(f *fakeStore) {
				f.getArticleFn = func(id string) (article.Article, bool) { return ownedArticle(), true }
				f.updateArticleFn = func(id string, patch article.Patch) (article.Article, error) {
					return article.Article{}, errBoom
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.users[otherAuthor.ID] = otherAuthor
			if tt.storeSetUp != nil {
				tt.storeSetUp(store)
			}

			h := handlers.NewArticlesHandler(store, article.DeleteByOwner)
			r := setupRouter(http.MethodPatch, "/articles/:id", asUser(tt.actorID), h.UpdateArticle)

			w := serve(r, http.MethodPatch, "/articles/a1", tt.body)
			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestUpdateArticleHandler_AuthorCannotReassign(t *testing.T) {
	var got article.Patch

	store := newFakeStore()
	store.getArticleFn = func(id string) (article.Article, bool) { return ownedArticle(), true }
	store.updateArticleFn = func(id string, patch article.Patch) (article.Article, error) {
		got = patch
		return patch.Apply(ownedArticle()), nil
	}

	h := handlers.NewArticlesHandler(store, article.DeleteByOwner)
	r := setupRouter(http.MethodPatch, "/articles/:id", asUser(authorUser.ID), h.UpdateArticle)

	w := serve(r, http.MethodPatch, "/articles/a1", `{"authorId":"1","author":"Admin User","published":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}
	if got.AuthorID != nil || got.Author != nil {
		t.Fatalf("author fields should be dropped for non-admins: %+v", got)
	}
	if got.Published == nil || !*got.Published {
		t.Fatalf("other fields should pass through: %+v", got)
	}
}

func TestDeleteArticleHandler_Policies(t *testing.T) {
	tests := []struct {
		name           string
		policy         article.DeletePolicy
		actorID        string
		wantStatusCode int
	}{
		{name: "owner_policy_owner", policy: article.DeleteByOwner, actorID: authorUser.ID, wantStatusCode: http.StatusNoContent},
		{name: "owner_policy_other", policy: article.DeleteByOwner, actorID: otherAuthor.ID, wantStatusCode: http.StatusForbidden},
		{name: "legacy_policy_owner", policy: article.DeleteLegacy, actorID: authorUser.ID, wantStatusCode: http.StatusForbidden},
		{name: "legacy_policy_admin", policy: article.DeleteLegacy, actorID: adminUser.ID, wantStatusCode: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false

			store := newFakeStore()
			store.users[otherAuthor.ID] = otherAuthor
			store.getArticleFn = func(id string) (article.Article, bool) { return ownedArticle(), true }
			store.deleteArticleFn = func(id string) error {
				deleted = true
				return nil
			}

			h := handlers.NewArticlesHandler(store, tt.policy)
			r := setupRouter(http.MethodDelete, "/articles/:id", asUser(tt.actorID), h.DeleteArticle)

			w := serve(r, http.MethodDelete, "/articles/a1", "")
			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
			if deleted != (tt.wantStatusCode == http.StatusNoContent) {
				t.Fatalf("store delete called=%v for status %d", deleted, w.Code)
			}
		})
	}
}

func TestListArticlesHandler_AuthorSeesOwn(t *testing.T) {
	store := newFakeStore()
	store.articlesFn = func() []article.Article {
		return []article.Article{
			ownedArticle(),
			{ID: "a2", AuthorID: adminUser.ID, Published: true},
		}
	}

	h := handlers.NewArticlesHandler(store, article.DeleteByOwner)
	r := setupRouter(http.MethodGet, "/articles", asUser(authorUser.ID), h.ListArticles)

	w := serve(r, http.MethodGet, "/articles", "")
	var resp struct {
		Items []article.Article `json:"items"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 1 || resp.Items[0].ID != "a1" {
		t.Fatalf("unexpected listing: %+v", resp)
	}

	if w := serve(r, http.MethodGet, "/articles?status=archived", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad status filter got %d", w.Code)
	}
}
