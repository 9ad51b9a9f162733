package utils

import "github.com/gin-gonic/gin"

// Context keys the auth middleware sets for downstream handlers.
const (
	CtxUserID = "userId"
	CtxRole   = "role"
)

// CurrentUserID returns the authenticated user id, or 0 on an
// unauthenticated request.
func CurrentUserID(c *gin.Context) uint {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}

// CurrentRole returns the authenticated user's role, or "".
func CurrentRole(c *gin.Context) string {
	v, ok := c.Get(CtxRole)
	if !ok {
		return ""
	}
	role, _ := v.(string)
	return role
}
