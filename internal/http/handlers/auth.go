package handlers

import (
	"net/http"

	"github.com/geocoder89/neuralpulse/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type AuthStore interface {
	UserGetter
	Login(username, password string) (user.User, bool)
	Logout()
	Register(req user.RegisterRequest) (user.User, bool)
	CurrentUser() (user.User, bool)
}

type TokenIssuer interface {
	GenerateAccessToken(userID, username, role string) (string, error)
}

type AuthHandler struct {
	store AuthStore
	jwt   TokenIssuer
}

func NewAuthHandler(store AuthStore, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{store: store, jwt: jwt}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignUpRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=64"`
	Password        string `json:"password" binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Name            string `json:"name" binding:"required,max=120"`
	Email           string `json:"email" binding:"required,email"`
}

type loginResponse struct {
	AccessToken string    `json:"accessToken"`
	User        user.View `json:"user"`
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, ok := h.store.Login(req.Username, req.Password)
	if !ok {
		RespondUnAuthorized(ctx, "invalid_credentials", "Username or password is incorrect.")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(u.ID, u.Username, string(u.Role))
	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusOK, loginResponse{
		AccessToken: accessToken,
		User:        u.View(),
	})
}

// SignUp registers a new author. It does not log the user in.
func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, ok := h.store.Register(user.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Role:     user.RoleAuthor,
		Name:     req.Name,
		Email:    req.Email,
	})
	if !ok {
		RespondConflict(ctx, "username_taken", "Username is already in use.")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user": u.View()})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	h.store.Logout()
	ctx.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	u, ok := currentActor(ctx, h.store)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, u.View())
}

// Session reports the store's session pointer: the last user to log in
// through this process, or null.
func (h *AuthHandler) Session(ctx *gin.Context) {
	u, ok := h.store.CurrentUser()
	if !ok {
		ctx.JSON(http.StatusOK, gin.H{"currentUser": nil})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"currentUser": u.View()})
}
