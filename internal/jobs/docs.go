// Package jobs provides scheduled background tasks for the order status service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field form with seconds.
//
// # Available Jobs
//
// 1. HoldExpiryJob - Sweeps pending transitions whose driver details dialog was abandoned
// 2. OutboxRelayJob - Publishes stored order status events to the message broker
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(jobs.Schedules{
//		HoldExpiry:  "0 * * * * *",
//		OutboxRelay: "*/5 * * * * *",
//	}, expireHandler, relayHandler, relayCmd, logger)
//	if err != nil {
//		log.Fatal("Failed to configure jobs:", err)
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs log failures and wait for the next tick. A relay run that fails
// leaves its messages unpublished for the next run.
package jobs
