// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are built on github.com/robfig/cron/v3 and managed through
// JobManager, which starts and stops them as a set.
//
// The only job today is OrderSettlementJob: every ten seconds it sweeps
// orders left in Delivered and settles each one in its own transaction.
// Delivery confirmation settles inline on the happy path, so the sweep
// normally finds nothing; it exists for the confirmations whose
// settlement step was lost to a crash or lost a concurrency race.
package jobs
