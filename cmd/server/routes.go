package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/parish-tech/steeple/internal/cache"
	"github.com/parish-tech/steeple/internal/db"
	"github.com/parish-tech/steeple/internal/events"
	"github.com/parish-tech/steeple/internal/http/api"
	adminapi "github.com/parish-tech/steeple/internal/http/api/admin/endpoints"
	authapi "github.com/parish-tech/steeple/internal/http/api/admin/auth/endpoints"
	publicapi "github.com/parish-tech/steeple/internal/http/api/public/endpoints"
	"github.com/parish-tech/steeple/internal/newsletter"
	"github.com/parish-tech/steeple/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(
	r *gin.Engine,
	env Environment,
	store db.Store,
	storageSystem storage.Storage,
	media *cache.MediaCache,
	displays *events.Publisher,
	verification *newsletter.VerificationService,
	dispatcher *newsletter.Dispatcher,
) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		adminapi.PublicationModule(store, storageSystem, media, displays),
		adminapi.ChurchModule(store, displays),
		adminapi.SubscriberModule(store),
		adminapi.ScheduleModule(store, dispatcher),
		// session endpoints that require auth
		authapi.AuthSessionModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/public",
	},
		publicapi.CatalogueModule(store, storageSystem, media),
		publicapi.ChurchInfoModule(store),
		publicapi.NewsletterModule(verification),
	)

	// locally stored uploads are served straight from disk
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
