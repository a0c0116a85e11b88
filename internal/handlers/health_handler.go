package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const serviceName = "nutrilife-landing"

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": serviceName,
		"time":    time.Now().Format(time.RFC3339),
	})
}
