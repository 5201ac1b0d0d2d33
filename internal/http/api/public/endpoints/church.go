package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parish-tech/steeple/internal/db"
	"github.com/parish-tech/steeple/internal/http/api"
	"github.com/parish-tech/steeple/internal/http/api/public/packets"
)

type ChurchInfoController struct {
	store db.Store
}

// ChurchInfoModule mounts the public church contact listing.
func ChurchInfoModule(store db.Store) api.Module {
	ctl := &ChurchInfoController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/church-details", ctl.listDetails)
	})
}

func (c *ChurchInfoController) listDetails(ctx *gin.Context) (any, *api.APIError) {
	all, err := c.store.ListChurchDetails()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list church details"}
	}

	out := make([]packets.ChurchDetailResponse, 0, len(all))
	for _, d := range all {
		out = append(out, packets.ChurchDetailResponse{
			ID:           d.ID,
			Name:         d.Name,
			Address:      d.Address,
			Phone:        d.Phone,
			Email:        d.Email,
			Website:      d.Website,
			ServiceTimes: d.ServiceTimes,
			PastorName:   d.PastorName,
		})
	}
	return api.Data(out), nil
}
