package cron

import (
	"context"
	"fmt"
	"time"

	"syncslot/config"
	"syncslot/services/tasks"
	"syncslot/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// FinalizedPusher pushes a finalized event to participant calendars.
type FinalizedPusher interface {
	PushFinalized(ctx context.Context, eventID string) error
}

// RedisOpt is the asynq connection shared by the client and the worker.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitSyncWorker runs the async worker in background and returns the server
// so the caller can shut it down.
func InitSyncWorker(pusher FinalizedPusher) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEventFinalized, handleEventFinalized(pusher))

	// Start async worker with retry logic
	go func() {
		logger := utils.GetLogger()
		logger.Info("[SyncWorker] Starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("[SyncWorker] Failed to start worker", zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[SyncWorker] Max retry attempts reached, calendar push disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleEventFinalized(pusher FinalizedPusher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseEventFinalized(task)
		if err != nil {
			utils.GetLogger().Error("[SyncHandler] Invalid payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}

		utils.GetLogger().Info("[SyncHandler] Pushing finalized event", zap.String("eventID", p.EventID), zap.Int("version", p.Version))
		if err := pusher.PushFinalized(ctx, p.EventID); err != nil {
			utils.GetLogger().Warn("[SyncHandler] Calendar push failed", zap.String("eventID", p.EventID), zap.Error(err))
			return err
		}
		return nil
	}
}
