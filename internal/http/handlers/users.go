package handlers

import (
	"errors"
	"net/http"

	"github.com/geocoder89/neuralpulse/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UsersStore interface {
	UserGetter
	Users() []user.User
	Register(req user.RegisterRequest) (user.User, bool)
	UpdateUser(id string, patch user.Patch) (user.User, error)
}

type UsersHandler struct {
	store UsersStore
}

func NewUsersHandler(store UsersStore) *UsersHandler {
	return &UsersHandler{store: store}
}

func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	users := user.Views(h.store.Users())

	ctx.JSON(http.StatusOK, gin.H{
		"items": users,
		"count": len(users),
	})
}

// CreateUser is the admin path: the role is chosen by the caller.
func (h *UsersHandler) CreateUser(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, ok := h.store.Register(req)
	if !ok {
		RespondConflict(ctx, "username_taken", "Username is already in use.")
		return
	}

	ctx.JSON(http.StatusCreated, u.View())
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	actor, ok := currentActor(ctx, h.store)
	if !ok {
		return
	}

	id := ctx.Param("id")
	if !actor.IsAdmin() && actor.ID != id {
		RespondForbidden(ctx, "You can only edit your own profile")
		return
	}

	var patch user.Patch
	if !BindJSON(ctx, &patch) {
		return
	}

	if patch.Role != nil && !actor.IsAdmin() {
		RespondForbidden(ctx, "Only admins can change roles")
		return
	}

	u, err := h.store.UpdateUser(id, patch)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not update user")
		return
	}

	ctx.JSON(http.StatusOK, u.View())
}
