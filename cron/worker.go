package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"seatwise/config"
	"seatwise/database"
	"seatwise/services/tracking"
)

// InitTrackingWorker runs the async tracking worker in background. It
// drains the tracking queue and persists events into the
// tracking_events collection.
func InitTrackingWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTrackingDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tracking.TypeTrackingRecord, handleTrackingTask)

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[TrackingWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[TrackingWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[TrackingWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleTrackingTask(ctx context.Context, task *asynq.Task) error {
	var event tracking.Event
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		log.Printf("[TrackingWorker] invalid payload: %v", err)
		return err
	}

	coll := database.DB().Collection("tracking_events")
	if _, err := coll.InsertOne(ctx, event); err != nil {
		log.Printf("[TrackingWorker] failed to persist tracking event for booking %s: %v", event.BookingID, err)
		return err
	}
	return nil
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTrackingDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[TrackingWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
