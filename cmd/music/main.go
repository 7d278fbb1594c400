package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/wedding-site-api/internal/aws"
	"github.com/imrishuroy/wedding-site-api/internal/catalog"
	"github.com/imrishuroy/wedding-site-api/internal/config"
	"github.com/imrishuroy/wedding-site-api/internal/handlers"
	"github.com/imrishuroy/wedding-site-api/internal/notify"
	"github.com/imrishuroy/wedding-site-api/internal/server"
)

func setupRouter(cfg *config.Config, clients *aws.AWSClients, logger *zap.Logger) *gin.Engine {
	r := handlers.NewRouter(handlers.RouterConfig{
		Log:          logger,
		CORSOrigin:   cfg.CORSOrigin,
		AllowMethods: handlers.MusicMethods,
		MaxBodyBytes: cfg.MaxBodyBytes,
		ErrorKey:     "error",
	})

	// One token cache per process; warm invocations reuse it.
	tokens := catalog.NewTokenCache(catalog.Credentials{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RedirectURI:  cfg.Spotify.RedirectURI,
		RefreshToken: cfg.Spotify.RefreshToken,
		TokenURL:     cfg.Spotify.TokenURL,
	})
	if cfg.Spotify.RefreshToken == "" {
		logger.Warn("no SPOTIFY_REFRESH_TOKEN, using client credentials; playlist additions will fail")
	}

	var sender notify.Sender
	if cfg.EventsQueueURL != "" {
		sender = aws.NewPublisher(clients.SQS, cfg.EventsQueueURL)
	}

	handlers.RegisterMusicRoutes(r, handlers.MusicConfig{
		Catalog:           catalog.NewClient(tokens, cfg.Spotify.APIURL),
		DynamoDBClient:    clients.DynamoDB,
		SongRequestsTable: cfg.SongRequestsTable,
		DefaultPlaylist:   cfg.Spotify.PlaylistID,
		Events:            notify.NewEmitter(sender, logger),
		Log:               logger,
	})

	return r
}

func main() {
	env, err := server.Setup(context.Background(), (*config.Config).ValidateMusic)
	if err != nil {
		log.Fatal(err)
	}
	defer env.Log.Sync()

	server.Serve(setupRouter(env.Config, env.AWS, env.Log), env)
}
