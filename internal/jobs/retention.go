// Package jobs hosts the periodic maintenance loops.
package jobs

import (
	"context"
	"time"

	"wallettally/internal/logger"
	"wallettally/internal/service"
)

// EmailLogRetention purges email logs older than retentionDays once a
// day until ctx is cancelled. Only email logs are ever bulk-deleted;
// transactions have no automated deletion path.
func EmailLogRetention(ctx context.Context, admin *service.AdminService, retentionDays int) {
	if retentionDays <= 0 {
		logger.Info("email log retention disabled")
		return
	}

	age := time.Duration(retentionDays) * 24 * time.Hour
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	run := func() {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		if _, err := admin.PurgeEmailLogs(runCtx, age); err != nil {
			logger.Error("email log retention run failed", "error", err)
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			logger.Info("email log retention stopped")
			return
		case <-ticker.C:
			run()
		}
	}
}
