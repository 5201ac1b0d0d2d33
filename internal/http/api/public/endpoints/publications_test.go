package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parish-tech/steeple/internal/cache"
	"github.com/parish-tech/steeple/internal/db"
	"github.com/parish-tech/steeple/internal/http/api"
	"github.com/parish-tech/steeple/internal/http/api/public/packets"
	"github.com/parish-tech/steeple/internal/model"
	"github.com/parish-tech/steeple/internal/storage"
)

type fakeStore struct {
	db.Store
	publications []model.Publication
}

func (f *fakeStore) ListPublications() ([]model.Publication, error) {
	return f.publications, nil
}

func catalogueRouter(store db.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	st := storage.NewLocalStorage("./uploads", "http://localhost:8080")
	media := cache.NewMediaCache(cache.DefaultMediaTTL)
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/public"}, CatalogueModule(store, st, media))
	return r
}

func get(t *testing.T, r *gin.Engine, path string) packets.GroupedPublicationsResponse {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data packets.GroupedPublicationsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func cataloguePublications() []model.Publication {
	img := "easter_20250401_090000.jpg"
	return []model.Publication{
		{
			ID:        1,
			Title:     "Easter Service",
			Content:   "He is risen.",
			ImagePath: &img,
			Date:      time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC),
			Tags:      []string{"worship"},
		},
		{
			ID:      2,
			Title:   "Christmas Carols",
			Content: "Carols by candlelight.",
			Date:    time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC),
			Tags:    []string{"music"},
		},
		{
			ID:      3,
			Title:   "Advent Reflections",
			Content: "Daily readings.",
			Date:    time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestCatalogueGroupsByYearDescending(t *testing.T) {
	r := catalogueRouter(&fakeStore{publications: cataloguePublications()})

	data := get(t, r, "/api/public/publications")
	assert.Equal(t, []string{"2025", "2024"}, data.Years)
	require.Len(t, data.Groups["2024"], 2)
	assert.Equal(t, "Christmas Carols", data.Groups["2024"][0].Title)
	assert.Equal(t, "Advent Reflections", data.Groups["2024"][1].Title)
	assert.Nil(t, data.Columns)
}

func TestCatalogueYearFilter(t *testing.T) {
	r := catalogueRouter(&fakeStore{publications: cataloguePublications()})

	data := get(t, r, "/api/public/publications?year=2024")
	assert.Equal(t, []string{"2024"}, data.Years)
	assert.NotContains(t, data.Groups, "2025")
}

func TestCatalogueTagSearch(t *testing.T) {
	// public search reaches into tags
	r := catalogueRouter(&fakeStore{publications: cataloguePublications()})

	data := get(t, r, "/api/public/publications?search=music")
	require.Len(t, data.Groups["2024"], 1)
	assert.Equal(t, "Christmas Carols", data.Groups["2024"][0].Title)
}

func TestCatalogueMasonryColumns(t *testing.T) {
	r := catalogueRouter(&fakeStore{publications: cataloguePublications()})

	data := get(t, r, "/api/public/publications?columns=2")
	require.Len(t, data.Columns, 2)
	// year-ordered sequence is 1 (2025), 2, 3 (2024) split round-robin
	assert.Equal(t, "Easter Service", data.Columns[0][0].Title)
	assert.Equal(t, "Christmas Carols", data.Columns[1][0].Title)
	assert.Equal(t, "Advent Reflections", data.Columns[0][1].Title)
}

func TestCatalogueResolvesImageURLs(t *testing.T) {
	r := catalogueRouter(&fakeStore{publications: cataloguePublications()})

	data := get(t, r, "/api/public/publications?year=2025")
	require.Len(t, data.Groups["2025"], 1)
	url := data.Groups["2025"][0].ImageURL
	require.NotNil(t, url)
	assert.Equal(t, "http://localhost:8080/uploads/easter_20250401_090000.jpg", *url)
}
