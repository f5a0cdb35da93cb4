package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/havenmed/records-api/internal/handler"
)

// HeaderXAdminKey guards the administrative endpoints
const HeaderXAdminKey = "X-Admin-Key"

// AdminKey rejects requests that do not present the configured admin
// key. An empty configured key disables the admin surface entirely.
func AdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(HeaderXAdminKey)
		if key == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid admin key"))
			return
		}
		c.Next()
	}
}
