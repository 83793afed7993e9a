package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

const (
	userIDKey   = "userId"
	isGuestKey  = "isGuest"
	guestHeader = "X-Guest-Id"
	maxGuestLen = 128
)

// Identity derives the owner from the X-Guest-Id header and stores it in
// context as "guest:<id>". Paths in public skip the check.
func Identity(public ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		for _, p := range public {
			if path == p {
				c.Next()
				return
			}
		}

		guestID := strings.TrimSpace(c.GetHeader(guestHeader))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		if len(guestID) > maxGuestLen || strings.ContainsAny(guestID, "/\\") {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid guest id", nil)
			return
		}

		c.Set(userIDKey, "guest:"+guestID)
		c.Set(isGuestKey, true)
		c.Next()
	}
}

// UserIDFromContext fetches the owner id set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
