// Package jobs provides scheduled background tasks, built on
// github.com/robfig/cron/v3.
//
// The only job today is the NotificationRelayJob: it drains the transactional
// outbox every few seconds and hands staged status-change events to the
// notifier. Because the outbox row is only marked published after a
// successful hand-off, delivery is at-least-once; a crash between hand-off
// and mark simply replays the event on the next tick.
//
// Jobs are managed through JobManager, which starts and stops them as a
// group.
package jobs
