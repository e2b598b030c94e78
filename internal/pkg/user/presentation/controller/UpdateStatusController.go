package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-pairchat/internal/pkg/auth/presentation/middleware"
	"go-pairchat/internal/pkg/user/application/usecase"
	"go-pairchat/pkg/errors"
)

// UpdateStatusController handles PUT /users/status
type UpdateStatusController struct {
	uc *usecase.UpdateStatusUseCase
}

func NewUpdateStatusController(uc *usecase.UpdateStatusUseCase) *UpdateStatusController {
	return &UpdateStatusController{uc: uc}
}

type updateStatusRequest struct {
	IsOnline *bool `json:"isOnline"`
}

func (h *UpdateStatusController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, errors.ErrUnauthorized)
			return
		}

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadBody(c)
			return
		}
		if req.IsOnline == nil {
			respondError(c, errors.ErrStatusMissing)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if err := h.uc.Execute(ctx, usecase.UpdateStatusInput{Caller: caller, IsOnline: *req.IsOnline}); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
	}
}
