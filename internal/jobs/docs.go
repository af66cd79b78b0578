// Package jobs provides scheduled background tasks for the order
// coordination system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. AssignmentRetryJob - Runs every 30 seconds to republish pending orders
// so the fleet service re-runs vehicle selection. Orders stay pending when
// selection failed only because no available vehicle had enough capacity;
// the fleet changes over time, so the retry gives them another chance.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(uowFactory, publisher, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed fetch of pending orders aborts the run and is logged. A failed
// publish for one order is logged and skipped so the rest of the batch still
// goes out; the next run retries it anyway.
package jobs
