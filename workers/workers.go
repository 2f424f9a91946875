package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"gridlock/config"
	"gridlock/models"
	"gridlock/tasks"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	models.ConnectDatabase(config.C.Database)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: config.C.RedisAddr},
		asynq.Config{
			Concurrency: 10,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAnalyzeFile, tasks.HandleAnalyzeFileTask)

	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("failed to start workers")
	}
}
