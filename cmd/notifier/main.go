// Package main runs the notification worker. It consumes approval outcome
// tasks from the Redis queue and delivers them through the utility service.
package main

import (
	"log"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/config"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/notification"

	"github.com/hibiken/asynq"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.NotifierConcurrency,
			Queues:      map[string]int{cfg.NotifyQueue: 1},
		},
	)

	handler := notification.NewHandler(notification.NewUtilClient(cfg.Util))
	log.Printf("Notifier consuming queue %q with concurrency %d", cfg.NotifyQueue, cfg.NotifierConcurrency)

	// Run blocks until SIGTERM or SIGINT, then drains active tasks.
	if err := srv.Run(notification.NewServeMux(handler)); err != nil {
		log.Fatalf("Notifier stopped: %v", err)
	}
}
