package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-pairchat/pkg/errors"
)

const requestTimeout = 3 * time.Second

func respondError(c *gin.Context, err error) {
	c.JSON(errors.HTTPStatus(err), gin.H{"message": errors.PublicMessage(err)})
}

func respondBadBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}
