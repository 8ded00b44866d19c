// Package money carries decimal amounts between form input, the REST backend
// and the payroll arithmetic. Decoding never fails: anything that is not a
// number counts as zero.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Amount struct {
	value decimal.Decimal
}

var Zero = Amount{}

func New(value decimal.Decimal) Amount {
	return Amount{value: value}
}

func FromFloat(value float64) Amount {
	return Amount{value: decimal.NewFromFloat(value)}
}

func FromInt(value int64) Amount {
	return Amount{value: decimal.NewFromInt(value)}
}

// Parse reads a decimal from user input. Empty or non-numeric input yields zero.
// The whole string must be numeric: "5000abc" is zero, not 5000.
func Parse(raw string) Amount {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Zero
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return Zero
	}
	return Amount{value: parsed}
}

// Valid reports whether raw would parse to a number rather than the zero fallback.
func Valid(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	_, err := decimal.NewFromString(raw)
	return err == nil
}

func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

func (a Amount) Add(b Amount) Amount {
	return Amount{value: a.value.Add(b.value)}
}

func (a Amount) Sub(b Amount) Amount {
	return Amount{value: a.value.Sub(b.value)}
}

// Round rounds half away from zero to two decimal places.
func (a Amount) Round() Amount {
	return Amount{value: a.value.Round(2)}
}

func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

func (a Amount) IsNegative() bool {
	return a.value.IsNegative()
}

func (a Amount) Equal(b Amount) bool {
	return a.value.Equal(b.value)
}

func (a Amount) Float64() float64 {
	f, _ := a.value.Float64()
	return f
}

// String renders the amount with exactly two decimals.
func (a Amount) String() string {
	return a.value.StringFixed(2)
}

// Raw renders the amount without padding, suitable for seeding a form field.
func (a Amount) Raw() string {
	return a.value.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" || text == "" {
		*a = Zero
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			*a = Zero
			return nil
		}
		text = unquoted
	}
	*a = Parse(text)
	return nil
}

func Sum(amounts ...Amount) Amount {
	total := Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
