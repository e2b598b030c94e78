package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-pairchat/internal/pkg/auth/presentation/middleware"
	"go-pairchat/internal/pkg/chat/application/usecase"
	"go-pairchat/pkg/errors"
)

// CreateConversationController handles POST /conversations
type CreateConversationController struct {
	uc *usecase.CreateConversationUseCase
}

func NewCreateConversationController(uc *usecase.CreateConversationUseCase) *CreateConversationController {
	return &CreateConversationController{uc: uc}
}

type createConversationRequest struct {
	ParticipantID string `json:"participantId"`
}

func (h *CreateConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, errors.ErrUnauthorized)
			return
		}

		var req createConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadBody(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		out, err := h.uc.Execute(ctx, usecase.CreateConversationInput{Caller: caller, ParticipantID: req.ParticipantID})
		if err != nil {
			respondError(c, err)
			return
		}
		if out.Created {
			c.JSON(http.StatusCreated, gin.H{"id": out.Conversation.ID, "message": "Conversation created"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": out.Conversation.ID, "message": "Conversation already exists"})
	}
}
