package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/neuralpulse/internal/domain/image"
	"github.com/gin-gonic/gin"
)

type ImagesStore interface {
	UserGetter
	Images() []image.UploadedImage
	GetImage(id string) (image.UploadedImage, bool)
	AddImage(img image.UploadedImage) string
	DeleteImage(id string) error
}

type ImagesHandler struct {
	store ImagesStore
	now   func() time.Time
}

func NewImagesHandler(store ImagesStore) *ImagesHandler {
	return &ImagesHandler{store: store, now: time.Now}
}

func (h *ImagesHandler) ListImages(ctx *gin.Context) {
	actor, ok := currentActor(ctx, h.store)
	if !ok {
		return
	}

	items := image.VisibleTo(h.store.Images(), actor)

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *ImagesHandler) UploadImage(ctx *gin.Context) {
	actor, ok := currentActor(ctx, h.store)
	if !ok {
		return
	}

	var req image.UploadRequest
	if !BindJSON(ctx, &req) {
		return
	}

	img := image.NewFromUploadRequest(req, actor, h.now())
	img.ID = h.store.AddImage(img)

	ctx.JSON(http.StatusCreated, img)
}

func (h *ImagesHandler) GetImage(ctx *gin.Context) {
	if _, ok := currentActor(ctx, h.store); !ok {
		return
	}

	img, found := h.store.GetImage(ctx.Param("id"))
	if !found {
		RespondNotFound(ctx, "Image not found")
		return
	}

	ctx.JSON(http.StatusOK, img)
}

func (h *ImagesHandler) DeleteImage(ctx *gin.Context) {
	actor, ok := currentActor(ctx, h.store)
	if !ok {
		return
	}

	id := ctx.Param("id")
	img, found := h.store.GetImage(id)
	if !found {
		RespondNotFound(ctx, "Image not found")
		return
	}

	if !image.CanDelete(actor, img) {
		RespondForbidden(ctx, "You can only delete your own images")
		return
	}

	if err := h.store.DeleteImage(id); err != nil {
		if errors.Is(err, image.ErrNotFound) {
			RespondNotFound(ctx, "Image not found")
			return
		}
		RespondInternal(ctx, "Could not delete image")
		return
	}

	ctx.Status(http.StatusNoContent)
}
