package http

import (
	"github.com/gin-gonic/gin"

	"go-pairchat/internal/pkg/user/application/usecase"
	repository "go-pairchat/internal/pkg/user/persistence/repository/port"
	"go-pairchat/internal/pkg/user/presentation/controller"
	"go-pairchat/pkg/logger"
)

// RegisterRoutes mounts the account endpoints. public takes unauthenticated routes,
// private must already enforce a bearer token.
func RegisterRoutes(public *gin.RouterGroup, private *gin.RouterGroup, repo repository.UserRepository, tokens usecase.TokenIssuer, log logger.Logger) {
	registerCtl := controller.NewRegisterController(usecase.NewRegisterUseCase(repo, tokens, log))
	loginCtl := controller.NewLoginController(usecase.NewLoginUseCase(repo, tokens, log))
	listCtl := controller.NewListUsersController(usecase.NewListUsersUseCase(repo, log))
	statusCtl := controller.NewUpdateStatusController(usecase.NewUpdateStatusUseCase(repo, log))
	subscribeCtl := controller.NewSubscribeController(usecase.NewSubscribeUseCase(repo, log))

	// POST /api/auth/register
	public.POST("/auth/register", registerCtl.Handle())
	// POST /api/auth/login
	public.POST("/auth/login", loginCtl.Handle())

	// GET /api/users
	private.GET("/users", listCtl.Handle())
	// PUT /api/users/status
	private.PUT("/users/status", statusCtl.Handle())
	// POST /api/notifications/subscribe
	private.POST("/notifications/subscribe", subscribeCtl.Handle())
}
