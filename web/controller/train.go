package controller

import (
	"github.com/ReshmithaBathala/bookingbackend/logger"
	"github.com/ReshmithaBathala/bookingbackend/web/entity"
	"github.com/ReshmithaBathala/bookingbackend/web/service"

	"github.com/gin-gonic/gin"
)

// TrainController serves the inventory. Writes need the admin key, reads a
// session token.
type TrainController struct {
	BaseController

	trainService *service.TrainService
}

func NewTrainController(g *gin.RouterGroup, trainService *service.TrainService, adminKey, session gin.HandlerFunc) *TrainController {
	a := &TrainController{trainService: trainService}
	a.initRouter(g, adminKey, session)
	return a
}

func (a *TrainController) initRouter(g *gin.RouterGroup, adminKey, session gin.HandlerFunc) {
	g.POST("/trains", adminKey, a.create)
	g.PUT("/trains/:id", adminKey, a.updateSeats)
	g.GET("/trains", session, a.list)
	g.GET("/trains/:id", session, a.get)
}

func (a *TrainController) create(c *gin.Context) {
	var req entity.CreateTrainRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := a.trainService.CreateTrain(c.Request.Context(), req.TrainName, req.Source, req.Destination, req.TotalSeats)
	if err != nil {
		jsonServiceError(c, "create train", err)
		return
	}
	logger.Infof("train %d added: %s %s -> %s, %d seats", t.Id, t.TrainName, t.Source, t.Destination, t.TotalSeats)
	jsonObj(c, entity.Msg{Message: "Train added successfully", Id: t.Id})
}

func (a *TrainController) list(c *gin.Context) {
	trains, err := a.trainService.ListTrains(c.Request.Context(), service.TrainFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
	})
	if err != nil {
		jsonServiceError(c, "list trains", err)
		return
	}
	jsonObj(c, trains)
}

func (a *TrainController) get(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	t, err := a.trainService.GetTrain(c.Request.Context(), id)
	if err != nil {
		jsonServiceError(c, "get train", err)
		return
	}
	jsonObj(c, t)
}

func (a *TrainController) updateSeats(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	var req entity.UpdateSeatsRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := a.trainService.UpdateTotalSeats(c.Request.Context(), id, req.TotalSeats)
	if err != nil {
		jsonServiceError(c, "update seats", err)
		return
	}
	logger.Infof("train %d seats set to %d (%d available)", t.Id, t.TotalSeats, t.AvailableSeats)
	jsonMsg(c, "Seats updated successfully")
}
