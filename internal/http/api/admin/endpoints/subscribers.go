package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parish-tech/steeple/internal/db"
	"github.com/parish-tech/steeple/internal/http/api"
	"github.com/parish-tech/steeple/internal/http/api/admin/packets"
	"github.com/parish-tech/steeple/internal/model"
)

type SubscriberController struct {
	store db.Store
}

func newSubscriberController(store db.Store) *SubscriberController {
	return &SubscriberController{store: store}
}

// SubscriberModule mounts all authenticated /newsletter-subscribers endpoints
func SubscriberModule(store db.Store) api.Module {
	ctl := newSubscriberController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/newsletter-subscribers", ctl.listSubscribers)
		c.GET("/newsletter-subscribers/paginated", ctl.listPaginated)
		c.GET("/newsletter-subscribers/active", ctl.listActive)
		c.GET("/newsletter-subscribers/:id", ctl.getByID)
		c.GET("/newsletter-subscribers/by-email/:email", ctl.getByEmail)
		c.PUT("/newsletter-subscribers/:id", ctl.updateSubscriber)
		c.DELETE("/newsletter-subscribers/:id", ctl.deleteSubscriber)
	})
}

func (c *SubscriberController) listSubscribers(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := c.store.ListSubscribers()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list subscribers"}
	}
	return api.Data(subscriberResponses(all)), nil
}

func (c *SubscriberController) listPaginated(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	page, size := paginationParams(ctx)

	items, total, err := c.store.ListSubscribersPaginated(size, (page-1)*size)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list subscribers"}
	}

	return api.Data(packets.PaginatedSubscribersResponse{
		Items: subscriberResponses(items),
		Page:  page,
		Size:  size,
		Total: total,
	}), nil
}

func (c *SubscriberController) listActive(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := c.store.ListActiveSubscribers()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list subscribers"}
	}
	return api.Data(subscriberResponses(all)), nil
}

func (c *SubscriberController) getByID(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	sub, err := c.store.GetSubscriberByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "subscriber not found"}
	}
	return api.Data(subscriberResponse(sub)), nil
}

func (c *SubscriberController) getByEmail(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	sub, err := c.store.GetSubscriberByEmail(ctx.Param("email"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "subscriber not found"}
	}
	return api.Data(subscriberResponse(sub)), nil
}

func (c *SubscriberController) updateSubscriber(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.UpdateSubscriberRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	sub, err := c.store.UpdateSubscriber(id, request.Name, model.SubscriberStatus(request.Status))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "subscriber not found"}
	}
	return api.Data(subscriberResponse(sub)), nil
}

func (c *SubscriberController) deleteSubscriber(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if _, err := c.store.GetSubscriberByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "subscriber not found"}
	}
	if err := c.store.DeleteSubscriber(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete subscriber"}
	}
	return api.Data(gin.H{"message": "deleted"}), nil
}

func subscriberResponse(s model.Subscriber) packets.SubscriberResponse {
	resp := packets.SubscriberResponse{
		ID:        s.ID,
		Email:     s.Email,
		Name:      s.Name,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
	if s.VerifiedAt != nil {
		v := s.VerifiedAt.Format(time.RFC3339)
		resp.VerifiedAt = &v
	}
	return resp
}

func subscriberResponses(list []model.Subscriber) []packets.SubscriberResponse {
	out := make([]packets.SubscriberResponse, 0, len(list))
	for _, s := range list {
		out = append(out, subscriberResponse(s))
	}
	return out
}
