package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// etaggedJSON is an encoded response body with its validator, so cached blog
// responses are hashed once instead of on every hit.
type etaggedJSON struct {
	body []byte
	etag string
}

func encodeETagged(payload interface{}) (etaggedJSON, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return etaggedJSON{}, err
	}

	sum := sha256.Sum256(b)

	return etaggedJSON{body: b, etag: `"` + hex.EncodeToString(sum[:]) + `"`}, nil
}

// writeETagged answers 304 when If-None-Match carries the current validator.
// Clients must revalidate because published content changes without notice.
func writeETagged(ctx *gin.Context, status int, res etaggedJSON) {
	ctx.Header("ETag", res.etag)
	ctx.Header("Cache-Control", "no-cache")

	if ifNoneMatchMatches(ctx.GetHeader("If-None-Match"), res.etag) {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.Data(status, "application/json; charset=utf-8", res.body)
}

func ifNoneMatchMatches(headerValue, currentETag string) bool {
	headerValue = strings.TrimSpace(headerValue)
	if headerValue == "" || currentETag == "" {
		return false
	}
	if headerValue == "*" {
		return true
	}

	current := normalizeETag(currentETag)

	for _, part := range strings.Split(headerValue, ",") {
		if normalizeETag(part) == current {
			return true
		}
	}
	return false
}

// normalizeETag drops the weak prefix; If-None-Match uses weak comparison.
func normalizeETag(raw string) string {
	v := strings.TrimSpace(raw)
	return strings.TrimSpace(strings.TrimPrefix(v, "W/"))
}
