// Package httpserver exposes the ReplyForge HTTP API handlers.
package httpserver

import "github.com/gin-gonic/gin"

const identityKey = "rf.identity"

// withIdentity stores the authenticated account identity on the request context.
func withIdentity(c *gin.Context, email string) {
	c.Set(identityKey, email)
}

// identityFromCtx fetches the authenticated account identity.
func identityFromCtx(c *gin.Context) (string, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}
