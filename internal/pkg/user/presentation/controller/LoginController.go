package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-pairchat/internal/pkg/user/application/usecase"
	"go-pairchat/internal/pkg/user/presentation/dto"
)

// LoginController handles POST /auth/login
type LoginController struct {
	uc *usecase.LoginUseCase
}

func NewLoginController(uc *usecase.LoginUseCase) *LoginController {
	return &LoginController{uc: uc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadBody(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		out, err := h.uc.Execute(ctx, usecase.LoginInput{Email: req.Email, Password: req.Password})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.AuthResponse{Token: out.Token, User: dto.NewUserResponse(out.User)})
	}
}
