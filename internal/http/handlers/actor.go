package handlers

import (
	"github.com/geocoder89/neuralpulse/internal/domain/user"
	"github.com/geocoder89/neuralpulse/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// UserGetter resolves the caller's current record so role changes apply
// without waiting for the token to expire.
type UserGetter interface {
	GetUser(id string) (user.User, bool)
}

// currentActor writes a 401 and returns false when the token's subject no
// longer exists.
func currentActor(ctx *gin.Context, users UserGetter) (user.User, bool) {
	id, ok := middlewares.UserIDFromContext(ctx)
	if !ok || id == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return user.User{}, false
	}

	u, ok := users.GetUser(id)
	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Account no longer exists")
		return user.User{}, false
	}
	return u, true
}
