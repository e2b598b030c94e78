package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-pairchat/internal/pkg/auth/presentation/middleware"
	"go-pairchat/internal/pkg/user/application/usecase"
	"go-pairchat/pkg/errors"
)

// SubscribeController handles POST /notifications/subscribe
type SubscribeController struct {
	uc *usecase.SubscribeUseCase
}

func NewSubscribeController(uc *usecase.SubscribeUseCase) *SubscribeController {
	return &SubscribeController{uc: uc}
}

type subscribeRequest struct {
	Subscription json.RawMessage `json:"subscription"`
}

func (h *SubscribeController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, errors.ErrUnauthorized)
			return
		}

		var req subscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, errors.ErrSubscriptionMissing)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if err := h.uc.Execute(ctx, usecase.SubscribeInput{Caller: caller, Subscription: req.Subscription}); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Subscription saved"})
	}
}
