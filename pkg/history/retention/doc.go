// Package retention prunes validation history.
//
// A Pruner deletes runs older than a number of days and then trims the store
// to a maximum number of runs, oldest first. A Scheduler runs the pruner on a
// cron expression (robfig/cron standard syntax, e.g. "0 3 * * *").
package retention
