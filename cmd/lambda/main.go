package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/blog-articles-api/internal/api"
	"github.com/blog-articles-api/internal/config"
	"github.com/blog-articles-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logger.New(config.Default().Log)
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.Log)
	handler := api.NewHandler(cfg, log)

	lambda.Start(handler.Handle)
}
