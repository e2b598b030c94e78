package http

import (
	"github.com/gin-gonic/gin"

	"go-pairchat/internal/pkg/notification/presentation/controller"
)

// RegisterRoutes mounts the push configuration endpoint on an authenticated group.
func RegisterRoutes(private *gin.RouterGroup, enabled bool, publicKey string) {
	configCtl := controller.NewConfigController(enabled, publicKey)

	// GET /api/notifications/config
	private.GET("/notifications/config", configCtl.Handle())
}
