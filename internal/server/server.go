// Package server holds the bootstrap shared by the site's Lambda functions.
package server

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/wedding-site-api/internal/aws"
	"github.com/imrishuroy/wedding-site-api/internal/config"
	"github.com/imrishuroy/wedding-site-api/internal/logging"
)

// Env is what every function needs before it can register handlers.
type Env struct {
	Config *config.Config
	Log    *zap.Logger
	AWS    *aws.AWSClients
}

// Setup loads config, runs the function-specific validate check (nil skips
// it), then builds the logger and AWS clients.
func Setup(ctx context.Context, validate func(*config.Config) error) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if validate != nil {
		if err := validate(cfg); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	clients, err := aws.NewAWSClients(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to init aws clients: %w", err)
	}

	return &Env{Config: cfg, Log: logger, AWS: clients}, nil
}

// Serve runs r as a local HTTP server when RUN_LOCAL is set, otherwise as
// an API Gateway HTTP API (v2) Lambda handler. It blocks.
func Serve(r *gin.Engine, env *Env) {
	if env.Config.RunLocal {
		env.Log.Info("running local server", zap.String("addr", env.Config.LocalAddr))
		if err := r.Run(env.Config.LocalAddr); err != nil {
			env.Log.Fatal("failed to run local server", zap.Error(err))
		}
		return
	}

	adapter := ginadapter.NewV2(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
