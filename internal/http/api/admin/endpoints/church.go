package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parish-tech/steeple/internal/db"
	"github.com/parish-tech/steeple/internal/events"
	"github.com/parish-tech/steeple/internal/http/api"
	"github.com/parish-tech/steeple/internal/http/api/admin/packets"
	"github.com/parish-tech/steeple/internal/model"
)

type ChurchController struct {
	store  db.Store
	events *events.Publisher
}

func newChurchController(store db.Store, ev *events.Publisher) *ChurchController {
	return &ChurchController{store: store, events: ev}
}

// ChurchModule mounts all authenticated /church-details endpoints
func ChurchModule(store db.Store, ev *events.Publisher) api.Module {
	ctl := newChurchController(store, ev)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/church-details", ctl.listDetails)
		c.POST("/church-details", ctl.createDetail)
		c.PUT("/church-details/:id", ctl.updateDetail)
		c.DELETE("/church-details/:id", ctl.deleteDetail)
	})
}

func (c *ChurchController) listDetails(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := c.store.ListChurchDetails()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list church details"}
	}

	out := make([]packets.ChurchDetailResponse, 0, len(all))
	for _, d := range all {
		out = append(out, churchDetailResponse(d))
	}
	return api.Data(out), nil
}

func (c *ChurchController) createDetail(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ChurchDetailPayload
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	d, err := c.store.CreateChurchDetail(draftFromPayload(request))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create church detail"}
	}

	c.events.Publish(events.TopicChurchDetails, events.ChangeEvent{Entity: "church_detail", Action: "created", ID: d.ID})
	return api.Data(churchDetailResponse(d)), nil
}

func (c *ChurchController) updateDetail(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.ChurchDetailPayload
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	d, err := c.store.UpdateChurchDetail(id, draftFromPayload(request))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "church detail not found"}
	}

	c.events.Publish(events.TopicChurchDetails, events.ChangeEvent{Entity: "church_detail", Action: "updated", ID: d.ID})
	return api.Data(churchDetailResponse(d)), nil
}

func (c *ChurchController) deleteDetail(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if _, err := c.store.GetChurchDetailByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "church detail not found"}
	}
	if err := c.store.DeleteChurchDetail(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete church detail"}
	}

	c.events.Publish(events.TopicChurchDetails, events.ChangeEvent{Entity: "church_detail", Action: "deleted", ID: id})
	return api.Data(gin.H{"message": "deleted"}), nil
}

func draftFromPayload(p packets.ChurchDetailPayload) db.ChurchDetailDraft {
	return db.ChurchDetailDraft{
		Name:         p.Name,
		Address:      p.Address,
		Phone:        p.Phone,
		Email:        p.Email,
		Website:      p.Website,
		ServiceTimes: p.ServiceTimes,
		PastorName:   p.PastorName,
	}
}

func churchDetailResponse(d model.ChurchDetail) packets.ChurchDetailResponse {
	return packets.ChurchDetailResponse{
		ID:           d.ID,
		Name:         d.Name,
		Address:      d.Address,
		Phone:        d.Phone,
		Email:        d.Email,
		Website:      d.Website,
		ServiceTimes: d.ServiceTimes,
		PastorName:   d.PastorName,
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    d.UpdatedAt.Format(time.RFC3339),
	}
}
