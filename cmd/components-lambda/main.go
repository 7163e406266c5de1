// Command components-lambda serves the service component API from AWS Lambda
// behind an API Gateway proxy integration.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/components/handler"
	"github.com/jacentio/components/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := store.ConfigFromEnvironment()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	s, err := store.NewFromConfig(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to create store", "error", err)
		os.Exit(1)
	}
	s.SetLogger(logger)

	logger.Info("starting components handler",
		"table", cfg.TableName,
		"region", cfg.Region,
	)
	lambda.Start(handler.NewHandler(s, logger).Handle)
}
