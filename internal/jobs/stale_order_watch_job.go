package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"dispatch/internal/core/application/usecases/queries"
)

// StaleOrderWatchJob periodically reports orders stuck in pending status
// longer than the configured threshold so dispatchers can chase them. The
// job only observes: status changes stay with the order lifecycle handlers.
type StaleOrderWatchJob struct {
	handler   queries.GetStalePendingOrdersQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleOrderWatchJob creates the watch job. Threshold is how long an
// order may sit in pending before it is reported.
func NewStaleOrderWatchJob(
	handler queries.GetStalePendingOrdersQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleOrderWatchJob {
	return &StaleOrderWatchJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stale_order_watch_job"),
	}
}

// Start begins the watch job, running every minute.
func (j *StaleOrderWatchJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		query, queryErr := queries.NewGetStalePendingOrdersQuery(j.threshold)
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "Stale order watch job misconfigured", "error", queryErr)
			return
		}

		stale, handleErr := j.handler.Handle(ctx, query)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale order watch job failed", "error", handleErr)
			return
		}

		for _, o := range stale {
			j.logger.WarnContext(ctx, "Order pending past threshold",
				"orderID", o.ID.String(),
				"businessID", o.BusinessID.String(),
				"pendingFor", time.Since(o.CreatedAt).Round(time.Second).String(),
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order watch job started (running every minute)",
		"threshold", j.threshold.String())
	return nil
}

// Stop stops the watch job.
func (j *StaleOrderWatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order watch job stopped")
}
