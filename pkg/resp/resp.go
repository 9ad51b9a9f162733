package resp

import (
	"net/http"

	"fooddelivery/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}

// Error maps an application error to its HTTP status and stable code.
// Anything else becomes a generic 500 so internals never leak to clients.
func Error(c *gin.Context, err error) {
	if ae := apperr.As(err); ae != nil {
		c.JSON(ae.Status, gin.H{"ok": false, "code": string(ae.Code), "error": ae.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "code": string(apperr.CodeInternal), "error": "internal server error"})
}
