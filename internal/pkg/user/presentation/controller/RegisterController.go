package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-pairchat/internal/pkg/user/application/usecase"
	"go-pairchat/internal/pkg/user/presentation/dto"
)

// RegisterController handles POST /auth/register
type RegisterController struct {
	uc *usecase.RegisterUseCase
}

func NewRegisterController(uc *usecase.RegisterUseCase) *RegisterController {
	return &RegisterController{uc: uc}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *RegisterController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadBody(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		out, err := h.uc.Execute(ctx, usecase.RegisterInput{Username: req.Username, Email: req.Email, Password: req.Password})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.AuthResponse{Token: out.Token, User: dto.NewUserResponse(out.User)})
	}
}
