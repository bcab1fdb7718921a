package handlers_test

import (
	"bytes"
	"errors"
	"net/http/httptest"

	"github.com/geocoder89/neuralpulse/internal/domain/article"
	"github.com/geocoder89/neuralpulse/internal/domain/image"
	"github.com/geocoder89/neuralpulse/internal/domain/user"
	"github.com/geocoder89/neuralpulse/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	adminUser  = user.User{ID: "1", Username: "admin", Password: "admin123", Role: user.RoleAdmin, Name: "Admin User"}
	authorUser = user.User{ID: "2", Username: "author", Password: "author123", Role: user.RoleAuthor, Name: "Demo Author"}
)

// fakeStore implements every handler store interface. Unset functions fall
// back to zero values.
type fakeStore struct {
	users map[string]user.User

	loginFn       func(username, password string) (user.User, bool)
	logoutFn      func()
	registerFn    func(req user.RegisterRequest) (user.User, bool)
	currentUserFn func() (user.User, bool)
	updateUserFn  func(id string, patch user.Patch) (user.User, error)

	articlesFn        func() []article.Article
	getArticleFn      func(id string) (article.Article, bool)
	addArticleFn      func(a article.Article) article.Article
	updateArticleFn   func(id string, patch article.Patch) (article.Article, error)
	deleteArticleFn   func(id string) error
	publishedBySlugFn func(slug string) (article.Article, bool)

	imagesFn      func() []image.UploadedImage
	getImageFn    func(id string) (image.UploadedImage, bool)
	addImageFn    func(img image.UploadedImage) string
	deleteImageFn func(id string) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]user.User{
		adminUser.ID:  adminUser,
		authorUser.ID: authorUser,
	}}
}

func (f *fakeStore) GetUser(id string) (user.User, bool) {
	u, ok := f.users[id]
	return u, ok
}

func (f *fakeStore) Users() []user.User {
	return []user.User{adminUser, authorUser}
}

func (f *fakeStore) Login(username, password string) (user.User, bool) {
	if f.loginFn != nil {
		return f.loginFn(username, password)
	}
	return user.User{}, false
}

func (f *fakeStore) Logout() {
	if f.logoutFn != nil {
		f.logoutFn()
	}
}

func (f *fakeStore) Register(req user.RegisterRequest) (user.User, bool) {
	if f.registerFn != nil {
		return f.registerFn(req)
	}
	return user.User{}, false
}

func (f *fakeStore) CurrentUser() (user.User, bool) {
	if f.currentUserFn != nil {
		return f.currentUserFn()
	}
	return user.User{}, false
}

func (f *fakeStore) UpdateUser(id string, patch user.Patch) (user.User, error) {
	if f.updateUserFn != nil {
		return f.updateUserFn(id, patch)
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeStore) Articles() []article.Article {
	if f.articlesFn != nil {
		return f.articlesFn()
	}
	return nil
}

func (f *fakeStore) GetArticle(id string) (article.Article, bool) {
	if f.getArticleFn != nil {
		return f.getArticleFn(id)
	}
	return article.Article{}, false
}

func (f *fakeStore) AddArticle(a article.Article) article.Article {
	if f.addArticleFn != nil {
		return f.addArticleFn(a)
	}
	return a
}

func (f *fakeStore) UpdateArticle(id string, patch article.Patch) (article.Article, error) {
	if f.updateArticleFn != nil {
		return f.updateArticleFn(id, patch)
	}
	return article.Article{}, article.ErrNotFound
}

func (f *fakeStore) DeleteArticle(id string) error {
	if f.deleteArticleFn != nil {
		return f.deleteArticleFn(id)
	}
	return article.ErrNotFound
}

func (f *fakeStore) PublishedBySlug(slug string) (article.Article, bool) {
	if f.publishedBySlugFn != nil {
		return f.publishedBySlugFn(slug)
	}
	return article.Article{}, false
}

func (f *fakeStore) Images() []image.UploadedImage {
	if f.imagesFn != nil {
		return f.imagesFn()
	}
	return nil
}

func (f *fakeStore) GetImage(id string) (image.UploadedImage, bool) {
	if f.getImageFn != nil {
		return f.getImageFn(id)
	}
	return image.UploadedImage{}, false
}

func (f *fakeStore) AddImage(img image.UploadedImage) string {
	if f.addImageFn != nil {
		return f.addImageFn(img)
	}
	return "img-1"
}

func (f *fakeStore) DeleteImage(id string) error {
	if f.deleteImageFn != nil {
		return f.deleteImageFn(id)
	}
	return image.ErrNotFound
}

type fakeTokens struct {
	err error
}

func (f *fakeTokens) GenerateAccessToken(userID, username, role string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

var errBoom = errors.New("boom")

// asUser stands in for RequireAuth so handler tests need no real tokens.
func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		middlewares.SetIdentity(c, id, "", "")
		c.Next()
	}
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h...)

	return r
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
