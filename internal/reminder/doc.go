// Package reminder sends recurring todo reminder emails.
//
// A Dispatcher runs one batch for an interval: it loads the due todos with
// their owners and sends one email per todo. A Scheduler registers one cron
// job per entry of the schedule table and calls the dispatcher when it fires.
package reminder
