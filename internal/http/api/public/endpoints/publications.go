package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/parish-tech/steeple/internal/cache"
	"github.com/parish-tech/steeple/internal/db"
	"github.com/parish-tech/steeple/internal/http/api"
	"github.com/parish-tech/steeple/internal/http/api/public/packets"
	"github.com/parish-tech/steeple/internal/model"
	"github.com/parish-tech/steeple/internal/publications"
	"github.com/parish-tech/steeple/internal/storage"
)

const dateLayout = "2006-01-02"

type CatalogueController struct {
	store   db.Store
	storage storage.Storage
	media   *cache.MediaCache
}

func newCatalogueController(store db.Store, st storage.Storage, media *cache.MediaCache) *CatalogueController {
	return &CatalogueController{store: store, storage: st, media: media}
}

// CatalogueModule mounts the public publication catalogue.
func CatalogueModule(store db.Store, st storage.Storage, media *cache.MediaCache) api.Module {
	ctl := newCatalogueController(store, st, media)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/publications", ctl.listGrouped)
	})
}

// GET /api/public/publications?year=&month=&day=&featured=&search=&columns=
// The full list is filtered conjunctively, grouped by year and sorted
// date-descending within each group. Public search includes tags.
func (c *CatalogueController) listGrouped(ctx *gin.Context) (any, *api.APIError) {
	all, err := c.store.ListPublications()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list publications"}
	}

	opts := filterOptionsFromQuery(ctx)
	filtered := publications.Filter(all, opts, publications.ScopePublic)
	groups := publications.GroupByYear(filtered)

	response := packets.GroupedPublicationsResponse{
		Years:  publications.YearKeys(groups),
		Groups: make(map[string][]packets.PublicationResponse, len(groups)),
	}
	for year, group := range groups {
		response.Groups[year] = c.toResponses(group)
	}

	if cols, err := strconv.Atoi(ctx.Query("columns")); err == nil && cols > 0 {
		ordered := make([]model.Publication, 0, len(filtered))
		for _, year := range response.Years {
			ordered = append(ordered, groups[year]...)
		}
		for _, column := range publications.MasonryColumns(ordered, cols) {
			response.Columns = append(response.Columns, c.toResponses(column))
		}
	}

	return api.Data(response), nil
}

func filterOptionsFromQuery(ctx *gin.Context) publications.FilterOptions {
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
	return opts
}

func (c *CatalogueController) toResponse(p model.Publication) packets.PublicationResponse {
	resp := packets.PublicationResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Date:       p.Date.Format(dateLayout),
		LayoutType: string(p.LayoutType),
		Author:     p.Author,
		Tags:       []string(p.Tags),
		Featured:   p.Featured,
	}
	if p.ImagePath != nil {
		url := c.imageURL(*p.ImagePath)
		resp.ImageURL = &url
	}
	return resp
}

func (c *CatalogueController) toResponses(list []model.Publication) []packets.PublicationResponse {
	out := make([]packets.PublicationResponse, 0, len(list))
	for _, p := range list {
		out = append(out, c.toResponse(p))
	}
	return out
}

func (c *CatalogueController) imageURL(key string) string {
	if url, ok := c.media.Get(key); ok {
		return url
	}
	url := c.storage.URLFor(key)
	c.media.Put(key, url)
	return url
}
