package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

const dateLayout = "2006-01-02"

// Date is a calendar day. It accepts "2024-01-31" or a full RFC3339 timestamp
// and always marshals as "2024-01-31".
type Date struct {
	time.Time
}

// NewDate wraps t, dropping the clock part.
func NewDate(t time.Time) Date {
	return Date{Time: domain.NormalizeDate(t)}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*d = Date{}
		return nil
	}
	s, err := strconv.Unquote(raw)
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	return d.parse(s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Format(dateLayout))), nil
}

// UnmarshalText lets gin bind dates from query strings.
func (d *Date) UnmarshalText(text []byte) error {
	return d.parse(string(text))
}

func (d *Date) parse(s string) error {
	if t, err := time.Parse(dateLayout, s); err == nil {
		*d = NewDate(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", s)
	}
	*d = NewDate(t)
	return nil
}

// Ptr returns the date as *time.Time, nil when unset.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
