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

// GetConversationController handles GET /conversations/:id
type GetConversationController struct {
	uc *usecase.GetConversationUseCase
}

func NewGetConversationController(uc *usecase.GetConversationUseCase) *GetConversationController {
	return &GetConversationController{uc: uc}
}

func (h *GetConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, errors.ErrUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		view, err := h.uc.Execute(ctx, usecase.GetConversationInput{Caller: caller, ConversationID: c.Param("id")})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewConversationDetailResponse(*view))
	}
}
