package services

import (
	"context"
	"time"

	"github.com/Renal37/quickserve/internal/logger"
	"go.uber.org/zap"
)

// CompletedOrderRetention сколько хранятся выданные заказы
const CompletedOrderRetention = 7 * 24 * time.Hour

// CleanupService удаляет устаревшие выданные заказы
type CleanupService struct {
	storage cleanupStorage
	queue   jobScheduler
	now     func() time.Time
}

type cleanupStorage interface {
	DeleteCompletedOrdersBefore(ctx context.Context, before time.Time) (int64, error)
}

type jobScheduler interface {
	Enqueue(job Job) error
	ScheduleJob(job Job, delay time.Duration)
}

func NewCleanupService(storage cleanupStorage, queue jobScheduler) *CleanupService {
	return &CleanupService{storage: storage, queue: queue, now: time.Now}
}

// Cleanup удаляет выданные заказы старше CompletedOrderRetention и возвращает их число.
// Позиции и отзывы удаляются каскадом, у уведомлений обнуляется ссылка на заказ.
func (c *CleanupService) Cleanup(ctx context.Context) (int64, error) {
	before := c.now().UTC().Add(-CompletedOrderRetention)

	deleted, err := c.storage.DeleteCompletedOrdersBefore(ctx, before)
	if err != nil {
		return 0, err
	}

	logger.Log.Info("completed orders cleaned up",
		zap.Int64("deleted", deleted),
		zap.Time("before", before),
	)
	return deleted, nil
}

// Start запускает очистку сразу и затем повторяет ее каждые interval
func (c *CleanupService) Start(interval time.Duration) error {
	return c.queue.Enqueue(c.job(interval))
}

func (c *CleanupService) job(interval time.Duration) Job {
	return func(ctx context.Context) {
		if _, err := c.Cleanup(ctx); err != nil {
			logger.Log.Error("cleanup failed", zap.Error(err))
		}

		if ctx.Err() == nil {
			c.queue.ScheduleJob(c.job(interval), interval)
		}
	}
}
