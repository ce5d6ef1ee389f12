package dto

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators installs the custom binding tags used by the request DTOs:
// money_positive, money_nonnegative, decimal_positive and decimal_nonnegative.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterCustomTypeFunc(dateValue, Date{})

	rules := map[string]validator.Func{
		"money_positive":      moneyPositive,
		"money_nonnegative":   moneyNonNegative,
		"decimal_positive":    decimalPositive,
		"decimal_nonnegative": decimalNonNegative,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func dateValue(field reflect.Value) any {
	if d, ok := field.Interface().(Date); ok {
		return d.Time
	}
	return nil
}

func moneyPositive(fl validator.FieldLevel) bool {
	return fl.Field().Int() > 0
}

func moneyNonNegative(fl validator.FieldLevel) bool {
	return fl.Field().Int() >= 0
}

func parseDecimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

func decimalPositive(fl validator.FieldLevel) bool {
	d, ok := parseDecimalField(fl)
	return ok && d.IsPositive()
}

func decimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := parseDecimalField(fl)
	return ok && !d.IsNegative()
}
