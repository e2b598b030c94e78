package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-pairchat/internal/pkg/auth/presentation/middleware"
	"go-pairchat/internal/pkg/chat/application/usecase"
	"go-pairchat/internal/pkg/chat/presentation/dto"
	"go-pairchat/pkg/errors"
)

// SendMessageController handles POST /messages/send
type SendMessageController struct {
	uc *usecase.SendMessageUseCase
}

func NewSendMessageController(uc *usecase.SendMessageUseCase) *SendMessageController {
	return &SendMessageController{uc: uc}
}

type sendMessageRequest struct {
	Text           string `json:"text"`
	ConversationID string `json:"conversationId"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, errors.ErrUnauthorized)
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadBody(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		msg, err := h.uc.Execute(ctx, usecase.SendMessageInput{
			Caller:         caller,
			ConversationID: req.ConversationID,
			Text:           req.Text,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.NewMessageResponse(*msg))
	}
}
