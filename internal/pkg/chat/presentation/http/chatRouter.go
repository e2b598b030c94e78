package http

import (
	"github.com/gin-gonic/gin"

	"go-pairchat/internal/infrastructure/realtime"
	"go-pairchat/internal/pkg/chat/application/usecase"
	repository "go-pairchat/internal/pkg/chat/persistence/repository/port"
	"go-pairchat/internal/pkg/chat/presentation/controller"
	"go-pairchat/pkg/logger"
)

// RegisterRoutes mounts the conversation and message endpoints. private must enforce a bearer
// token; socket may additionally accept it from the query string.
func RegisterRoutes(private *gin.RouterGroup, socket *gin.RouterGroup, repo repository.ChatRepository, users usecase.UserDirectory,
	notifier usecase.MessageNotifier, router *realtime.Router, log logger.Logger) {
	sendUC := usecase.NewSendMessageUseCase(repo, notifier, log)

	createCtl := controller.NewCreateConversationController(usecase.NewCreateConversationUseCase(repo, users, log))
	listCtl := controller.NewListConversationsController(usecase.NewListConversationsUseCase(repo, users, log))
	getCtl := controller.NewGetConversationController(usecase.NewGetConversationUseCase(repo, users, log))
	sendCtl := controller.NewSendMessageController(sendUC)
	messagesCtl := controller.NewGetMessagesController(usecase.NewGetMessagesUseCase(repo, log))
	socketCtl := controller.NewChatSocketController(router, sendUC, log)

	// GET /api/conversations
	private.GET("/conversations", listCtl.Handle())
	// POST /api/conversations
	private.POST("/conversations", createCtl.Handle())
	// GET /api/conversations/:id
	private.GET("/conversations/:id", getCtl.Handle())

	// GET /api/messages?conversationId=&limit=
	private.GET("/messages", messagesCtl.Handle())
	// POST /api/messages/send
	private.POST("/messages/send", sendCtl.Handle())

	// GET /api/ws?token=
	socket.GET("/ws", socketCtl.Handle())
}
