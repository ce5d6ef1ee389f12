package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidators(v))
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidator(t)

	line := InvoiceLineRequest{Description: "Widget", Quantity: decimal.RequireFromString("1.5"), UnitPrice: 1000}
	assert.NoError(t, v.Struct(line))

	line.Quantity = decimal.Zero
	assert.Error(t, v.Struct(line))

	line.Quantity = decimal.NewFromInt(1)
	line.UnitPrice = -1
	assert.Error(t, v.Struct(line))

	profile := CreateRecurringProfileRequest{
		CategoryID:  "rent",
		Description: "Office rent",
		Amount:      150000,
		Frequency:   "monthly",
		StartDate:   NewDate(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)),
	}
	assert.NoError(t, v.Struct(profile))

	profile.Amount = 0
	assert.Error(t, v.Struct(profile))

	profile.Amount = 100
	profile.StartDate = Date{}
	assert.Error(t, v.Struct(profile), "zero start date must fail required")
}

func TestDateJSON(t *testing.T) {
	var body struct {
		D Date  `json:"d"`
		E *Date `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-02-29","e":"2024-03-01T15:04:05Z"}`), &body))
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), body.D.Time)
	require.NotNil(t, body.E)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), body.E.Time)

	out, err := json.Marshal(body.D)
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-29"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"d":"29/02/2024"}`), &body))
	assert.Nil(t, (*Date)(nil).Ptr())
}
