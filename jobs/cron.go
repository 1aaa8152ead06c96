package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ResetTokenCleaner xoá các reset token đã hết hạn
type ResetTokenCleaner interface {
	ClearExpiredResetTokens(ctx context.Context) (int64, error)
}

const jobTimeout = time.Minute

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, cleaner ResetTokenCleaner, log *zap.Logger) error {
	// Cron job chạy lúc 0h mỗi ngày
	if _, err := c.AddFunc("0 0 * * *", clearResetTokens(cleaner, log)); err != nil {
		return err
	}

	c.Start()
	log.Info("cron jobs initialized")
	return nil
}

func clearResetTokens(cleaner ResetTokenCleaner, log *zap.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := cleaner.ClearExpiredResetTokens(ctx)
		if err != nil {
			log.Error("clear expired reset tokens failed", zap.Error(err))
			return
		}
		log.Info("cleared expired reset tokens", zap.Int64("count", n))
	}
}
