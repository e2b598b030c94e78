package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-pairchat/internal/infrastructure/realtime"
	"go-pairchat/internal/pkg/auth/application/credential"
	"go-pairchat/internal/pkg/auth/presentation/middleware"
	chatusecase "go-pairchat/internal/pkg/chat/application/usecase"
	chatrepo "go-pairchat/internal/pkg/chat/persistence/repository/port"
	chatHTTP "go-pairchat/internal/pkg/chat/presentation/http"
	notificationHTTP "go-pairchat/internal/pkg/notification/presentation/http"
	userrepo "go-pairchat/internal/pkg/user/persistence/repository/port"
	userHTTP "go-pairchat/internal/pkg/user/presentation/http"
	"go-pairchat/pkg/logger"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Users         userrepo.UserRepository
	Chats         chatrepo.ChatRepository
	Credentials   *credential.Verifier
	Notifier      chatusecase.MessageNotifier
	Sessions      *realtime.Router
	PushEnabled   bool
	PushPublicKey string
	Logger        logger.Logger
}

// RegisterRoutes mounts every route under /api plus the health probe.
func RegisterRoutes(r *gin.Engine, deps Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "OK",
			"timestamp":       time.Now().UTC(),
			"vapidConfigured": deps.PushEnabled,
		})
	})

	api := r.Group("/api")
	private := api.Group("", middleware.RequireIdentity(deps.Credentials, false))
	socket := api.Group("", middleware.RequireIdentity(deps.Credentials, true))

	userHTTP.RegisterRoutes(api, private, deps.Users, deps.Credentials, deps.Logger)
	chatHTTP.RegisterRoutes(private, socket, deps.Chats, deps.Users, deps.Notifier, deps.Sessions, deps.Logger)
	notificationHTTP.RegisterRoutes(private, deps.PushEnabled, deps.PushPublicKey)
}
