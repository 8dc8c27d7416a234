// Package controller provides the HTTP handlers of the booking API.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ReshmithaBathala/bookingbackend/logger"
	"github.com/ReshmithaBathala/bookingbackend/web/entity"
	"github.com/ReshmithaBathala/bookingbackend/web/middleware"
	"github.com/ReshmithaBathala/bookingbackend/web/service"

	"github.com/gin-gonic/gin"
)

// BaseController provides helpers shared by the session-guarded controllers.
type BaseController struct{}

// currentUserId returns the id of the token holder. SessionAuth has already
// run, so a missing value is a wiring bug, answered as 401.
func (a *BaseController) currentUserId(c *gin.Context) (int, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorMsg{Error: "unauthenticated"})
		return 0, false
	}
	return claims.Id, true
}

func pathId(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		jsonError(c, http.StatusBadRequest, "invalid_request")
		return 0, false
	}
	return id, true
}

type errorMapping struct {
	err    error
	status int
	reason string
}

var errorMappings = []errorMapping{
	{service.ErrInvalidInput, http.StatusBadRequest, "invalid_request"},
	{service.ErrInvalidRole, http.StatusBadRequest, "invalid_role"},
	{service.ErrUsernameTaken, http.StatusConflict, "username_taken"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{service.ErrUserNotFound, http.StatusForbidden, "unknown_user"},
	{service.ErrTrainNotFound, http.StatusNotFound, "train_not_found"},
	{service.ErrInvalidSeats, http.StatusBadRequest, "invalid_seats"},
	{service.ErrSeatsBelowBooked, http.StatusBadRequest, "seats_below_booked"},
	{service.ErrNoAvailability, http.StatusBadRequest, "no_availability"},
	{service.ErrBookingNotFound, http.StatusNotFound, "booking_not_found"},
}

// jsonServiceError translates a service error into a response. Anything not
// in the table is a store failure: logged, and answered with a generic 500.
func jsonServiceError(c *gin.Context, action string, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			jsonError(c, m.status, m.reason)
			return
		}
	}
	logger.Warningf("%s failed [%s]: %v", action, c.GetString(middleware.RequestIdKey), err)
	jsonError(c, http.StatusInternalServerError, "internal_error")
}
