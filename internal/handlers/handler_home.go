package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerHomeRoutes registers the root route.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", home)
}

func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "remit_backend",
		"status":  "running",
	})
}
