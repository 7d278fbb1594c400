package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/wedding-site-api/internal/aws"
	"github.com/imrishuroy/wedding-site-api/internal/config"
	"github.com/imrishuroy/wedding-site-api/internal/handlers"
	"github.com/imrishuroy/wedding-site-api/internal/notify"
	"github.com/imrishuroy/wedding-site-api/internal/server"
)

func setupRouter(cfg *config.Config, clients *aws.AWSClients, logger *zap.Logger) *gin.Engine {
	r := handlers.NewRouter(handlers.RouterConfig{
		Log:          logger,
		CORSOrigin:   cfg.CORSOrigin,
		AllowMethods: handlers.RSVPMethods,
		MaxBodyBytes: cfg.MaxBodyBytes,
		ErrorKey:     "message",
	})

	var sender notify.Sender
	if cfg.EventsQueueURL != "" {
		sender = aws.NewPublisher(clients.SQS, cfg.EventsQueueURL)
	}

	handlers.RegisterRSVPRoutes(r, handlers.RSVPConfig{
		DynamoDBClient:    clients.DynamoDB,
		RSVPTable:         cfg.RSVPTable,
		SongRequestsTable: cfg.SongRequestsTable,
		Events:            notify.NewEmitter(sender, logger),
		Log:               logger,
	})

	return r
}

func main() {
	env, err := server.Setup(context.Background(), (*config.Config).ValidateRSVP)
	if err != nil {
		log.Fatal(err)
	}
	defer env.Log.Sync()

	server.Serve(setupRouter(env.Config, env.AWS, env.Log), env)
}
