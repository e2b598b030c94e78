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

// ListConversationsController handles GET /conversations
type ListConversationsController struct {
	uc *usecase.ListConversationsUseCase
}

func NewListConversationsController(uc *usecase.ListConversationsUseCase) *ListConversationsController {
	return &ListConversationsController{uc: uc}
}

func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, errors.ErrUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		views, err := h.uc.Execute(ctx, caller)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewConversationSummaryResponses(views))
	}
}
