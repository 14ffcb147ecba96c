package cron

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"sewakantor/config"
	bookingRepo "sewakantor/database/repository/booking"
	"sewakantor/utils"
)

const TypeBookingExpire = "booking:expire"

// InitExpiryWorker runs the async worker that sweeps stale pending
// bookings. Bookings that were never paid release their hold after
// PENDING_BOOKING_TTL_HOURS so the office shows as bookable again.
func InitExpiryWorker(repo bookingRepo.BookingRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingExpire, handleExpireTask(repo))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting booking expiry worker")

		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("expiry worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("expiry worker exhausted retries")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runExpiryScheduler(redisOpts)
}

// runExpiryScheduler enqueues the sweep task on a fixed interval.
func runExpiryScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})

	task := asynq.NewTask(TypeBookingExpire, nil)
	if _, err := scheduler.Register("@every 15m", task); err != nil {
		utils.GetLogger().Error("failed to register expiry schedule", zap.Error(err))
		return
	}

	if err := scheduler.Run(); err != nil {
		utils.GetLogger().Error("expiry scheduler stopped", zap.Error(err))
	}
}

func handleExpireTask(repo bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ttl := time.Duration(config.AppConfig.PendingBookingTTLHours) * time.Hour
		cutoff := time.Now().Add(-ttl)

		expired, err := repo.ExpirePending(cutoff)
		if err != nil {
			utils.GetLogger().Error("pending booking sweep failed", zap.Error(err))
			return err
		}
		if expired > 0 {
			utils.GetLogger().Info("expired stale pending bookings",
				zap.Int64("count", expired), zap.Time("cutoff", cutoff))
		}
		return nil
	}
}
