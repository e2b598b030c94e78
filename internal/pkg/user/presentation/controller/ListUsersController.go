package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-pairchat/internal/pkg/auth/presentation/middleware"
	"go-pairchat/internal/pkg/user/application/usecase"
	"go-pairchat/internal/pkg/user/presentation/dto"
	"go-pairchat/pkg/errors"
)

// ListUsersController handles GET /users
type ListUsersController struct {
	uc *usecase.ListUsersUseCase
}

func NewListUsersController(uc *usecase.ListUsersUseCase) *ListUsersController {
	return &ListUsersController{uc: uc}
}

func (h *ListUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, errors.ErrUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		profiles, err := h.uc.Execute(ctx, caller)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewUserResponses(profiles))
	}
}
