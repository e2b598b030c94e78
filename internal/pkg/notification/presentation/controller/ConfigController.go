package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ConfigController handles GET /notifications/config
type ConfigController struct {
	enabled   bool
	publicKey string
}

func NewConfigController(enabled bool, publicKey string) *ConfigController {
	if !enabled {
		publicKey = ""
	}
	return &ConfigController{enabled: enabled, publicKey: publicKey}
}

func (h *ConfigController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"enabled": h.enabled, "publicKey": h.publicKey})
	}
}
