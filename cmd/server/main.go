package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/parish-tech/steeple/internal/cache"
	"github.com/parish-tech/steeple/internal/db"
	"github.com/parish-tech/steeple/internal/events"
	"github.com/parish-tech/steeple/internal/newsletter"
	redisclient "github.com/parish-tech/steeple/internal/redis"
)

func main() {
	env := LoadEnvironment()

	if env.Environment != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	redisclient.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)

	store := db.NewStore(db.DB)
	storageSystem := InitStorage(env)
	media := cache.NewMediaCache(cache.DefaultMediaTTL)

	var displays *events.Publisher
	if env.MQTTBrokerURL != "" {
		p, err := events.Connect(env.MQTTBrokerURL, "steeple-server")
		if err != nil {
			log.Error().Err(err).Msg("display events disabled")
		} else {
			displays = p
			defer displays.Close()
		}
	}

	var mailer newsletter.Mailer = newsletter.ConsoleMailer{}
	if env.SendgridAPIKey != "" {
		mailer = newsletter.NewSendgridMailer(env.SendgridAPIKey, env.MailFromName, env.MailFromEmail)
	}

	verification := newsletter.NewVerificationService(store, mailer)
	dispatcher := newsletter.NewDispatcher(store, mailer, time.Minute)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := dispatcher.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("dispatcher stopped")
		}
	}()

	// the host owns the media cache sweep; no hidden timers in the cache
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if dropped := media.SweepExpired(); dropped > 0 {
					log.Debug().Int("dropped", dropped).Msg("media cache swept")
				}
			}
		}
	}()

	r := gin.Default()
	RegisterRoutes(r, env, store, storageSystem, media, displays, verification, dispatcher)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
