package image

import (
	"errors"
	"time"

	"github.com/geocoder89/neuralpulse/internal/domain/user"
)

var ErrNotFound = errors.New("image not found")

// UploadedImage is a media library entry. URL is either a remote URL or an
// inline data URL; articles embed the URL itself, not the id.
type UploadedImage struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Name       string `json:"name"`
	UploadedBy string `json:"uploadedBy"`
	UploadedAt string `json:"uploadedAt"`
}

type UploadRequest struct {
	URL  string `json:"url" binding:"required"`
	Name string `json:"name" binding:"required,max=255"`
}

func NewFromUploadRequest(req UploadRequest, uploader user.User, now time.Time) UploadedImage {
	return UploadedImage{
		URL:        req.URL,
		Name:       req.Name,
		UploadedBy: uploader.ID,
		UploadedAt: now.UTC().Format(time.RFC3339Nano),
	}
}

func CanDelete(actor user.User, img UploadedImage) bool {
	return actor.IsAdmin() || img.UploadedBy == actor.ID
}

func VisibleTo(all []UploadedImage, actor user.User) []UploadedImage {
	if actor.IsAdmin() {
		return all
	}

	out := make([]UploadedImage, 0)
	for _, img := range all {
		if img.UploadedBy == actor.ID {
			out = append(out, img)
		}
	}
	return out
}
