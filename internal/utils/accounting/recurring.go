package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// DefaultMaxCatchUp bounds how many periods one run may generate for a profile.
const DefaultMaxCatchUp = 36

// AddMonthsClamped adds months keeping the day of month, clamped to the last
// day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := daysIn(first.Year(), first.Month())
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func monthsPerPeriod(f domain.Frequency) (int, error) {
	switch f {
	case domain.Monthly:
		return 1, nil
	case domain.Quarterly:
		return 3, nil
	case domain.Yearly:
		return 12, nil
	}
	return 0, fmt.Errorf("frequency %q is not month based", f)
}

// Occurrence returns the n-th due date (n=0 is start itself). Every date is
// computed from start so the anchor day survives short months.
func Occurrence(start time.Time, f domain.Frequency, n int) (time.Time, error) {
	start = domain.NormalizeDate(start)
	if f == domain.Weekly {
		return start.AddDate(0, 0, 7*n), nil
	}
	step, err := monthsPerPeriod(f)
	if err != nil {
		return time.Time{}, err
	}
	return AddMonthsClamped(start, step*n), nil
}

// nextIndex finds the first occurrence after the profile's last generated date.
func nextIndex(p domain.RecurringExpenseProfile) (int, time.Time, error) {
	start := domain.NormalizeDate(p.StartDate)
	if p.LastGeneratedDate == nil {
		return 0, start, nil
	}
	last := domain.NormalizeDate(*p.LastGeneratedDate)

	n := 0
	if last.After(start) {
		if p.Frequency == domain.Weekly {
			n = int(last.Sub(start).Hours()/24) / 7
		} else {
			step, err := monthsPerPeriod(p.Frequency)
			if err != nil {
				return 0, time.Time{}, err
			}
			months := (last.Year()-start.Year())*12 + int(last.Month()) - int(start.Month())
			n = months / step
		}
	}
	for {
		due, err := Occurrence(start, p.Frequency, n)
		if err != nil {
			return 0, time.Time{}, err
		}
		if due.After(last) {
			return n, due, nil
		}
		n++
	}
}

// NextDueDate is start_date for a fresh profile, otherwise the first
// scheduled date after last_generated_date.
func NextDueDate(p domain.RecurringExpenseProfile) (time.Time, error) {
	_, due, err := nextIndex(p)
	return due, err
}

// DueDates lists the dates a run as of asOf should generate, oldest first,
// stopping at asOf, the end date, or maxCatchUp dates.
func DueDates(p domain.RecurringExpenseProfile, asOf time.Time, maxCatchUp int) ([]time.Time, error) {
	if p.Status != domain.RecurringActive {
		return nil, nil
	}
	if !p.Frequency.IsValid() {
		return nil, fmt.Errorf("profile %s has unknown frequency %q", p.ProfileID, p.Frequency)
	}
	if maxCatchUp <= 0 {
		maxCatchUp = DefaultMaxCatchUp
	}
	asOf = domain.NormalizeDate(asOf)

	n, due, err := nextIndex(p)
	if err != nil {
		return nil, err
	}
	var dates []time.Time
	for len(dates) < maxCatchUp && !due.After(asOf) && !pastEnd(p, due) {
		dates = append(dates, due)
		n++
		if due, err = Occurrence(p.StartDate, p.Frequency, n); err != nil {
			return nil, err
		}
	}
	return dates, nil
}

// ScheduleExhausted reports whether the next due date falls after end_date.
func ScheduleExhausted(p domain.RecurringExpenseProfile) (bool, error) {
	if p.EndDate == nil {
		return false, nil
	}
	due, err := NextDueDate(p)
	if err != nil {
		return false, err
	}
	return pastEnd(p, due), nil
}

func pastEnd(p domain.RecurringExpenseProfile, due time.Time) bool {
	return p.EndDate != nil && due.After(domain.NormalizeDate(*p.EndDate))
}
