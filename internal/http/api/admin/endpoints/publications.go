package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/parish-tech/steeple/internal/cache"
	"github.com/parish-tech/steeple/internal/db"
	"github.com/parish-tech/steeple/internal/events"
	"github.com/parish-tech/steeple/internal/http/api"
	"github.com/parish-tech/steeple/internal/http/api/admin/packets"
	"github.com/parish-tech/steeple/internal/model"
	"github.com/parish-tech/steeple/internal/publications"
	"github.com/parish-tech/steeple/internal/storage"
)

const dateLayout = "2006-01-02"

type PublicationController struct {
	store   db.Store
	storage storage.Storage
	media   *cache.MediaCache
	events  *events.Publisher
}

func newPublicationController(store db.Store, st storage.Storage, media *cache.MediaCache, ev *events.Publisher) *PublicationController {
	return &PublicationController{store: store, storage: st, media: media, events: ev}
}

// PublicationModule mounts all authenticated /publications endpoints
func PublicationModule(store db.Store, st storage.Storage, media *cache.MediaCache, ev *events.Publisher) api.Module {
	ctl := newPublicationController(store, st, media, ev)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/publications", ctl.listPublications)
		c.GET("/publications/:id", ctl.getPublication)
		c.POST("/publications", ctl.createPublication)
		c.PUT("/publications/:id", ctl.updatePublication)
		c.DELETE("/publications/:id", ctl.deletePublication)

		c.GET("/publications/by-year/:year", ctl.listByYear)
		c.GET("/publications/paginated", ctl.listPaginated)
		c.GET("/publications/counts", ctl.countsByYear)

		c.POST("/publications/upload-image", ctl.uploadImage)
	})
}

// GET /publications?year=&month=&day=&featured=&search=
// Admin search matches title, content and author but not tags.
func (c *PublicationController) listPublications(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := c.store.ListPublications()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list publications"}
	}

	var opts publications.FilterOptions
	if v, err := strconv.Atoi(ctx.Query("year")); err == nil {
		opts.Year = &v
	}
	if v, err := strconv.Atoi(ctx.Query("month")); err == nil {
		opts.Month = &v
	}
	if v, err := strconv.Atoi(ctx.Query("day")); err == nil {
		opts.Day = &v
	}
	if v, err := strconv.ParseBool(ctx.Query("featured")); err == nil {
		opts.Featured = &v
	}
	opts.Search = ctx.Query("search")

	return api.Data(c.toResponses(publications.Filter(all, opts, publications.ScopeAdmin))), nil
}

func (c *PublicationController) getPublication(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	p, err := c.store.GetPublicationByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "publication not found"}
	}
	return api.Data(c.toResponse(p)), nil
}

func (c *PublicationController) createPublication(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	draft, apiErr := c.bindDraft(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	p, err := c.store.CreatePublication(draft)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create publication"}
	}

	c.events.Publish(events.TopicPublications, events.ChangeEvent{Entity: "publication", Action: "created", ID: p.ID})
	return api.Data(c.toResponse(p)), nil
}

func (c *PublicationController) updatePublication(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	draft, apiErr := c.bindDraft(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	p, err := c.store.UpdatePublication(id, draft)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "publication not found"}
	}

	c.events.Publish(events.TopicPublications, events.ChangeEvent{Entity: "publication", Action: "updated", ID: p.ID})
	return api.Data(c.toResponse(p)), nil
}

func (c *PublicationController) deletePublication(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	p, err := c.store.GetPublicationByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "publication not found"}
	}
	if err := c.store.DeletePublication(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete publication"}
	}
	if p.ImagePath != nil {
		c.media.Invalidate(*p.ImagePath)
	}

	c.events.Publish(events.TopicPublications, events.ChangeEvent{Entity: "publication", Action: "deleted", ID: id})
	return api.Data(gin.H{"message": "deleted"}), nil
}

func (c *PublicationController) listByYear(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid year"}
	}

	all, err := c.store.ListPublicationsByYear(year)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list publications"}
	}
	return api.Data(c.toResponses(all)), nil
}

func (c *PublicationController) listPaginated(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	page, size := paginationParams(ctx)

	items, total, err := c.store.ListPublicationsPaginated(size, (page-1)*size)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list publications"}
	}

	return api.Data(packets.PaginatedPublicationsResponse{
		Items: c.toResponses(items),
		Page:  page,
		Size:  size,
		Total: total,
	}), nil
}

func (c *PublicationController) countsByYear(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	counts, err := c.store.CountPublicationsByYear()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not count publications"}
	}
	return api.Data(counts), nil
}

func (c *PublicationController) uploadImage(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing image file"}
	}

	key, err := c.storage.SaveImage(fileHeader, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Msg("image upload failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store image"}
	}

	url := c.storage.URLFor(key)
	c.media.Put(key, url)

	return api.Data(packets.UploadImageResponse{Key: key, URL: url}), nil
}

func (c *PublicationController) bindDraft(ctx *gin.Context) (db.PublicationDraft, *api.APIError) {
	var request packets.PublicationPayload
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return db.PublicationDraft{}, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	date, err := time.Parse(dateLayout, request.Date)
	if err != nil {
		return db.PublicationDraft{}, &api.APIError{Code: http.StatusBadRequest, Message: "date must be YYYY-MM-DD"}
	}

	layout := model.LayoutType(request.LayoutType)
	if layout == "" {
		layout = model.LayoutGrid
	}

	return db.PublicationDraft{
		Title:      request.Title,
		Content:    request.Content,
		ImagePath:  request.ImagePath,
		Date:       date,
		LayoutType: layout,
		Author:     request.Author,
		Tags:       request.Tags,
		Featured:   request.Featured,
	}, nil
}

// imageURL resolves a stored key through the media cache.
func (c *PublicationController) imageURL(key string) string {
	if url, ok := c.media.Get(key); ok {
		return url
	}
	url := c.storage.URLFor(key)
	c.media.Put(key, url)
	return url
}

func (c *PublicationController) toResponse(p model.Publication) packets.PublicationResponse {
	resp := packets.PublicationResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		ImagePath:  p.ImagePath,
		Date:       p.Date.Format(dateLayout),
		LayoutType: string(p.LayoutType),
		Author:     p.Author,
		Tags:       []string(p.Tags),
		Featured:   p.Featured,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
	if p.ImagePath != nil {
		url := c.imageURL(*p.ImagePath)
		resp.ImageURL = &url
	}
	return resp
}

func (c *PublicationController) toResponses(list []model.Publication) []packets.PublicationResponse {
	out := make([]packets.PublicationResponse, 0, len(list))
	for _, p := range list {
		out = append(out, c.toResponse(p))
	}
	return out
}

func paginationParams(ctx *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(ctx.DefaultQuery("size", "20"))
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}
