package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestNextDueAfterOneTime(t *testing.T) {
	due := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	task := ScheduledTask{TaskType: ScheduledTaskTypeOneTime, Due: due}

	next := task.NextDueAfter(due.Add(48 * time.Hour))
	require.True(t, next.Equal(due))
}

func TestNextDueAfterDailyRule(t *testing.T) {
	due := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	task := ScheduledTask{
		TaskType:          ScheduledTaskTypeRecurring,
		Due:               due,
		RecurringInterval: strptr("FREQ=DAILY;BYHOUR=9;BYMINUTE=0;BYSECOND=0"),
	}

	// Just after today's 09:00 run the next occurrence is tomorrow 09:00.
	next := task.NextDueAfter(due.Add(time.Minute))
	require.True(t, next.Equal(time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC)), "next = %v", next)
}

func TestNextDueAfterMonthlyRule(t *testing.T) {
	due := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	task := ScheduledTask{
		TaskType:          ScheduledTaskTypeRecurring,
		Due:               due,
		RecurringInterval: strptr("FREQ=MONTHLY;BYMONTHDAY=1;BYHOUR=10;BYMINUTE=0;BYSECOND=0"),
	}

	next := task.NextDueAfter(due.Add(time.Hour))
	require.True(t, next.Equal(time.Date(2025, time.April, 1, 10, 0, 0, 0, time.UTC)), "next = %v", next)
}

func TestNextDueAfterUnparsableRuleFallsBack(t *testing.T) {
	due := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	task := ScheduledTask{
		TaskType:          ScheduledTaskTypeRecurring,
		Due:               due,
		RecurringInterval: strptr("not-an-rrule"),
	}

	next := task.NextDueAfter(due.Add(time.Hour))
	require.True(t, next.Equal(due))
}
