package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func TestAddMonthsClamped(t *testing.T) {
	assert.Equal(t, day(2024, 2, 29), accounting.AddMonthsClamped(day(2024, 1, 31), 1))
	assert.Equal(t, day(2023, 2, 28), accounting.AddMonthsClamped(day(2023, 1, 31), 1))
	assert.Equal(t, day(2024, 4, 30), accounting.AddMonthsClamped(day(2024, 1, 31), 3))
	assert.Equal(t, day(2025, 2, 28), accounting.AddMonthsClamped(day(2024, 2, 29), 12))
	assert.Equal(t, day(2025, 1, 15), accounting.AddMonthsClamped(day(2024, 12, 15), 1))
}

func TestDueDates_MonthlyLeapClamp(t *testing.T) {
	p := domain.RecurringExpenseProfile{
		ProfileID: "p1",
		Frequency: domain.Monthly,
		StartDate: day(2024, 1, 31),
		Status:    domain.RecurringActive,
	}

	dates, err := accounting.DueDates(p, day(2024, 4, 15), accounting.DefaultMaxCatchUp)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2024, 1, 31), day(2024, 2, 29), day(2024, 3, 31)}, dates)

	// Resuming from the last generated date keeps the 31st anchor.
	p.LastGeneratedDate = dayPtr(2024, 3, 31)
	next, err := accounting.NextDueDate(p)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 4, 30), next)

	again, err := accounting.DueDates(p, day(2024, 4, 15), accounting.DefaultMaxCatchUp)
	require.NoError(t, err)
	assert.Empty(t, again)

	p.LastGeneratedDate = dayPtr(2024, 2, 29)
	next, err = accounting.NextDueDate(p)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 3, 31), next)
}

func TestDueDates_OtherFrequencies(t *testing.T) {
	weekly := domain.RecurringExpenseProfile{Frequency: domain.Weekly, StartDate: day(2024, 1, 1), Status: domain.RecurringActive}
	dates, err := accounting.DueDates(weekly, day(2024, 1, 22), 0)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2024, 1, 1), day(2024, 1, 8), day(2024, 1, 15), day(2024, 1, 22)}, dates)

	weekly.LastGeneratedDate = dayPtr(2024, 1, 15)
	next, err := accounting.NextDueDate(weekly)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 1, 22), next)

	quarterly := domain.RecurringExpenseProfile{Frequency: domain.Quarterly, StartDate: day(2023, 11, 30), Status: domain.RecurringActive}
	dates, err = accounting.DueDates(quarterly, day(2024, 6, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2023, 11, 30), day(2024, 2, 29), day(2024, 5, 30)}, dates)

	yearly := domain.RecurringExpenseProfile{Frequency: domain.Yearly, StartDate: day(2020, 2, 29), Status: domain.RecurringActive}
	dates, err = accounting.DueDates(yearly, day(2024, 3, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2020, 2, 29), day(2021, 2, 28), day(2022, 2, 28), day(2023, 2, 28), day(2024, 2, 29)}, dates)
}

func TestDueDates_EndDateStatusAndCap(t *testing.T) {
	p := domain.RecurringExpenseProfile{
		Frequency: domain.Monthly,
		StartDate: day(2024, 1, 10),
		EndDate:   dayPtr(2024, 3, 10),
		Status:    domain.RecurringActive,
	}
	dates, err := accounting.DueDates(p, day(2024, 12, 31), 0)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2024, 1, 10), day(2024, 2, 10), day(2024, 3, 10)}, dates)

	p.LastGeneratedDate = dayPtr(2024, 3, 10)
	done, err := accounting.ScheduleExhausted(p)
	require.NoError(t, err)
	assert.True(t, done)

	p.LastGeneratedDate = dayPtr(2024, 2, 10)
	done, err = accounting.ScheduleExhausted(p)
	require.NoError(t, err)
	assert.False(t, done)

	p.Status = domain.RecurringPaused
	dates, err = accounting.DueDates(p, day(2024, 12, 31), 0)
	require.NoError(t, err)
	assert.Empty(t, dates)

	capped := domain.RecurringExpenseProfile{Frequency: domain.Weekly, StartDate: day(2000, 1, 1), Status: domain.RecurringActive}
	dates, err = accounting.DueDates(capped, day(2024, 1, 1), 36)
	require.NoError(t, err)
	assert.Len(t, dates, 36)
	assert.Equal(t, day(2000, 1, 1), dates[0])

	bad := domain.RecurringExpenseProfile{Frequency: "daily", StartDate: day(2024, 1, 1), Status: domain.RecurringActive}
	_, err = accounting.DueDates(bad, day(2024, 2, 1), 0)
	assert.Error(t, err)
}
