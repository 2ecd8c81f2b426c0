// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery management service.
//
// # Available Jobs
//
// 1. StaleOrderWatchJob - Runs every minute and logs orders that have sat in
// pending status longer than the configured threshold, so dispatchers can
// confirm or cancel them. It is read-only and never mutates order state.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(stalePendingHandler, 15*time.Minute, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
