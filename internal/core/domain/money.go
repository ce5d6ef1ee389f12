package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places stored in a Money value.
const MoneyScale = 2

// Money is an amount in minor currency units (cents). All ledger arithmetic
// happens on this integer; decimals only appear when parsing and formatting.
type Money int64

// ErrMoneyOutOfRange is returned when an amount does not fit in int64 cents.
var ErrMoneyOutOfRange = errors.New("money amount is out of range")

// ParseMoney parses a decimal string such as "100.00" or "-3.5".
// Inputs with more than two decimal places are rejected rather than rounded.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty money amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	if !d.Equal(d.Truncate(MoneyScale)) {
		return 0, fmt.Errorf("money amount %q has more than %d decimal places", s, MoneyScale)
	}
	minor := d.Shift(MoneyScale)
	if !minor.BigInt().IsInt64() {
		return 0, fmt.Errorf("%q: %w", s, ErrMoneyOutOfRange)
	}
	return Money(minor.IntPart()), nil
}

// MustParseMoney is ParseMoney for constants and tests.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromDecimal converts a decimal amount, rounding half-up to cents.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	minor := d.Round(MoneyScale).Shift(MoneyScale)
	if !minor.BigInt().IsInt64() {
		return 0, fmt.Errorf("%s: %w", d.String(), ErrMoneyOutOfRange)
	}
	return Money(minor.IntPart()), nil
}

func (m Money) Add(o Money) Money { return m + o }

// CheckedAdd adds o and reports false when the sum leaves the int64 range.
func (m Money) CheckedAdd(o Money) (Money, bool) {
	sum := m + o
	if (o > 0 && sum < m) || (o < 0 && sum > m) {
		return 0, false
	}
	return sum, true
}

func (m Money) Sub(o Money) Money { return m - o }

func (m Money) Neg() Money { return -m }

// MulQuantity multiplies a unit price by a (possibly fractional) quantity and
// rounds the line result half-up to cents.
func (m Money) MulQuantity(qty decimal.Decimal) (Money, error) {
	return MoneyFromDecimal(m.Decimal().Mul(qty))
}

// Cmp returns -1, 0 or 1.
func (m Money) Cmp(o Money) int {
	switch {
	case m < o:
		return -1
	case m > o:
		return 1
	default:
		return 0
	}
}

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsPositive() bool { return m > 0 }
func (m Money) IsNegative() bool { return m < 0 }

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MoneyScale)
}

// String renders the amount with exactly two decimals, e.g. "1234.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(MoneyScale)
}

// SumMoney adds amounts without any intermediate rounding.
func SumMoney(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}

// MarshalJSON encodes the amount as a decimal string to keep clients off floats.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts both "12.34" and 12.34.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid money amount %s: %w", raw, err)
		}
		raw = unquoted
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value stores the amount as BIGINT minor units.
func (m Money) Value() (driver.Value, error) {
	return int64(m), nil
}

// Scan reads BIGINT minor units.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = 0
	case int64:
		*m = Money(v)
	case int32:
		*m = Money(v)
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("scan money: %w", err)
		}
		*m = Money(n)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("scan money: %w", err)
		}
		*m = Money(n)
	default:
		return fmt.Errorf("scan money: unsupported type %T", src)
	}
	return nil
}
