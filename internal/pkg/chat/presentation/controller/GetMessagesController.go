package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-pairchat/internal/pkg/auth/presentation/middleware"
	"go-pairchat/internal/pkg/chat/application/usecase"
	"go-pairchat/internal/pkg/chat/presentation/dto"
	"go-pairchat/pkg/errors"
)

// GetMessagesController handles GET /messages?conversationId=&limit=
type GetMessagesController struct {
	uc *usecase.GetMessagesUseCase
}

func NewGetMessagesController(uc *usecase.GetMessagesUseCase) *GetMessagesController {
	return &GetMessagesController{uc: uc}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, errors.ErrUnauthorized)
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"message": "limit must be a non-negative integer"})
				return
			}
			limit = n
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		msgs, err := h.uc.Execute(ctx, usecase.GetMessagesInput{
			Caller:         caller,
			ConversationID: c.Query("conversationId"),
			Limit:          limit,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewMessageResponses(msgs))
	}
}
