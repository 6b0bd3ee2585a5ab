package reminder

import "github.com/Msdoshack/2do/internal/domain"

// Entry binds a reminder interval to the cron expression that triggers it.
type Entry struct {
	Interval domain.ReminderInterval
	Cron     string
}

// DefaultSchedule fires every reminder interval on a fixed wall-clock cadence.
var DefaultSchedule = []Entry{
	{Interval: domain.ReminderMinute, Cron: "*/5 * * * *"},
	{Interval: domain.ReminderHourly, Cron: "0 * * * *"},
	{Interval: domain.ReminderDaily, Cron: "0 7 * * *"},
	{Interval: domain.ReminderWeekly, Cron: "0 7 * * 1"},
	{Interval: domain.ReminderMonthly, Cron: "0 7 1 * *"},
	{Interval: domain.ReminderYearly, Cron: "0 7 1 1 *"},
}
