package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness; persistence problems surface through request
// errors, not here.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
