package controller

import (
	"errors"
	"net/http"

	"github.com/ReshmithaBathala/bookingbackend/util/metrics"
	"github.com/ReshmithaBathala/bookingbackend/web/entity"
	"github.com/ReshmithaBathala/bookingbackend/web/service"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// BookingController serves seat booking and the caller's booking history.
type BookingController struct {
	BaseController

	bookingService *service.BookingService
}

func NewBookingController(g *gin.RouterGroup, bookingService *service.BookingService, session gin.HandlerFunc) *BookingController {
	a := &BookingController{bookingService: bookingService}
	a.initRouter(g, session)
	return a
}

func (a *BookingController) initRouter(g *gin.RouterGroup, session gin.HandlerFunc) {
	g.POST("/book", session, a.book)
	g.GET("/bookings", session, a.list)
	g.GET("/bookings/:id", session, a.get)
	g.GET("/bookings/:id/qrcode", session, a.qrcode)
}

func (a *BookingController) book(c *gin.Context) {
	userId, ok := a.currentUserId(c)
	if !ok {
		return
	}
	var req entity.BookRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := a.bookingService.Book(c.Request.Context(), userId, req.TrainId)
	metrics.RecordBooking(bookingResult(err))
	if err != nil {
		jsonServiceError(c, "book", err)
		return
	}
	jsonObj(c, entity.BookingMsg{Message: "Booking successful", BookingId: b.Id})
}

func (a *BookingController) list(c *gin.Context) {
	userId, ok := a.currentUserId(c)
	if !ok {
		return
	}
	bookings, err := a.bookingService.ListBookingsForUser(c.Request.Context(), userId)
	if err != nil {
		jsonServiceError(c, "list bookings", err)
		return
	}
	jsonObj(c, bookings)
}

func (a *BookingController) get(c *gin.Context) {
	userId, ok := a.currentUserId(c)
	if !ok {
		return
	}
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	b, err := a.bookingService.GetBooking(c.Request.Context(), id, userId)
	if err != nil {
		jsonServiceError(c, "get booking", err)
		return
	}
	jsonObj(c, b)
}

// qrcode renders the booking as a PNG ticket.
func (a *BookingController) qrcode(c *gin.Context) {
	userId, ok := a.currentUserId(c)
	if !ok {
		return
	}
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	b, err := a.bookingService.GetBooking(c.Request.Context(), id, userId)
	if err != nil {
		jsonServiceError(c, "booking qrcode", err)
		return
	}
	png, err := qrcode.Encode(b.TicketPayload(), qrcode.Medium, qrSize)
	if err != nil {
		jsonServiceError(c, "booking qrcode", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func bookingResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, service.ErrNoAvailability):
		return "no_availability"
	case errors.Is(err, service.ErrTrainNotFound):
		return "train_not_found"
	}
	return "error"
}
