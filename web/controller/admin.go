package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ReshmithaBathala/bookingbackend/logger"
)

const (
	defaultLogCount = 100
	maxLogCount     = 1000
)

// AdminController exposes operator views behind the admin key.
type AdminController struct{}

func NewAdminController(g *gin.RouterGroup, adminKey gin.HandlerFunc) *AdminController {
	a := &AdminController{}
	a.initRouter(g, adminKey)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup, adminKey gin.HandlerFunc) {
	admin := g.Group("/admin", adminKey)
	admin.GET("/logs", a.getLogs)
}

func (a *AdminController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", strconv.Itoa(defaultLogCount)))
	if err != nil || count <= 0 {
		count = defaultLogCount
	}
	if count > maxLogCount {
		count = maxLogCount
	}
	jsonObj(c, logger.GetLogs(count, c.DefaultQuery("level", "INFO")))
}
