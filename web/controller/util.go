package controller

import (
	"net/http"

	"github.com/ReshmithaBathala/bookingbackend/web/entity"

	"github.com/gin-gonic/gin"
)

func jsonMsg(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, entity.Msg{Message: msg})
}

func jsonObj(c *gin.Context, obj any) {
	c.JSON(http.StatusOK, obj)
}

func jsonError(c *gin.Context, statusCode int, reason string) {
	c.AbortWithStatusJSON(statusCode, entity.ErrorMsg{Error: reason})
}

// bindJSON answers 400 when the body is malformed or misses required fields.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid_request")
		return false
	}
	return true
}
