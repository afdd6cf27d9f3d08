package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterHealth(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "AIR PARADISE chatbot service is running"})
	})
}
