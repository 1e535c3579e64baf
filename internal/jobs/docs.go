// Package jobs runs the background work of the service next to the HTTP
// server.
//
// # Jobs
//
//  1. NotificationPurgeJob - cron job (github.com/robfig/cron/v3, seconds
//     field enabled) deleting read notifications older than the retention
//     period. Unread notifications are never purged.
//  2. The live channel relay - a Redis subscription forwarding events
//     published by other instances to the local WebSocket hub. It is a
//     Subscriber, not a cron job.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(purgeJob, relay)
//	if err := jobManager.StartAll(ctx); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
