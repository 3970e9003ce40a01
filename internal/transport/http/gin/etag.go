package httpgin

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// etagFor derives a content hash tag for a serialized body. Weak tags
// are enough here: the payloads are regenerated JSON, not byte-stable
// stored entities.
func etagFor(body []byte, weak bool) string {
	sum := sha256.Sum256(body)
	tag := `"` + hex.EncodeToString(sum[:]) + `"`
	if weak {
		return "W/" + tag
	}
	return tag
}

// writeJSONWithCache serializes v once, stamps ETag/Cache-Control and
// short-circuits to 304 when the client already holds the current tag.
// Arrival calendars and reservation payloads are polled by the seat-map
// widget, so most responses collapse to 304s.
func writeJSONWithCache(
	c *gin.Context,
	status int,
	v any,
	cacheControl string,
	weak bool,
) {
	body, err := json.Marshal(v)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	tag := etagFor(body, weak)

	c.Header("ETag", tag)
	if cacheControl != "" {
		c.Header("Cache-Control", cacheControl)
	}

	if c.GetHeader("If-None-Match") == tag {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(status, "application/json; charset=utf-8", body)
}
