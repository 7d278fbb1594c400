package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/imrishuroy/wedding-site-api/internal/server"
)

func main() {
	env, err := server.Setup(context.Background(), nil)
	if err != nil {
		log.Fatal(err)
	}
	defer env.Log.Sync()

	p := NewProcessor(env.AWS, env.Config.MetricsNamespace, env.Log)

	// Locally, process one simulated message and exit.
	if env.Config.RunLocal {
		event := events.SQSEvent{
			Records: []events.SQSMessage{
				{MessageId: "local-1", Body: env.Config.LocalSQSBody},
			},
		}
		if err := p.Handle(context.Background(), event); err != nil {
			env.Log.Fatal("local handler error", zap.Error(err))
		}
		return
	}

	lambda.Start(p.Handle)
}
