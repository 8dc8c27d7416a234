package controller

import (
	"errors"
	"net/http"

	"github.com/ReshmithaBathala/bookingbackend/database/model"
	"github.com/ReshmithaBathala/bookingbackend/logger"
	"github.com/ReshmithaBathala/bookingbackend/util/metrics"
	"github.com/ReshmithaBathala/bookingbackend/web/entity"
	"github.com/ReshmithaBathala/bookingbackend/web/service"

	"github.com/gin-gonic/gin"
)

// AuthController serves registration and login.
type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(g *gin.RouterGroup, authService *service.AuthService, limiter gin.HandlerFunc) *AuthController {
	a := &AuthController{authService: authService}
	a.initRouter(g, limiter)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup, limiter gin.HandlerFunc) {
	g.POST("/register", limiter, a.register)
	g.POST("/login", limiter, a.login)
}

func (a *AuthController) register(c *gin.Context) {
	var req entity.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := a.authService.Register(c.Request.Context(), req.Username, req.Password, model.Role(req.Role))
	if err != nil {
		jsonServiceError(c, "register", err)
		return
	}
	logger.Infof("registered user %q (id %d, role %s)", u.Username, u.Id, u.Role)
	jsonMsg(c, "User registered successfully")
}

func (a *AuthController) login(c *gin.Context) {
	var req entity.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.FailedLoginAttempts.Inc()
			logger.Noticef("failed login for %q from %s", req.Username, c.ClientIP())
		}
		jsonServiceError(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, entity.LoginResponse{
		Token:     res.Token,
		Role:      string(res.User.Role),
		ExpiresAt: res.ExpiresAt,
	})
}
