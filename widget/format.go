package widget

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	converter "github.com/malusev998/currency-converter"
)

// DefaultTimeFormat mirrors the en-US locale rendering of a date and time.
const DefaultTimeFormat = "1/2/2006, 3:04:05 PM"

const (
	maxAmountLength   = 64
	maxAmountExponent = 400
)

var ErrInvalidAmount = errors.New("amount must be a number greater than zero")

// ParseAmount accepts a full decimal literal only; trailing garbage is rejected.
// The value must be finite and positive as a float64.
func ParseAmount(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if len(input) > maxAmountLength {
		return 0, fmt.Errorf("%w: longer than %d characters", ErrInvalidAmount, maxAmountLength)
	}

	amount, err := decimal.NewFromString(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	if exp := amount.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}

	value, _ := amount.Float64()
	if math.IsInf(value, 0) || math.IsNaN(value) || value <= 0 {
		return 0, ErrInvalidAmount
	}

	return value, nil
}

// FormatNumber renders n in its shortest form: 10, 9.2, 0.92. Very large or
// very small magnitudes switch to exponent notation (1e+21, 1e-7).
func FormatNumber(n float64) string {
	if abs := math.Abs(n); abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		return strings.NewReplacer("e+0", "e+", "e-0", "e-").Replace(s)
	}

	return decimal.NewFromFloat(n).String()
}

func FormatDisplay(amount float64, from, to converter.CurrencyCode, result converter.ConversionResult) Display {
	return Display{
		FromAmount:   fmt.Sprintf("%s %s", FormatNumber(amount), from),
		ToAmount:     fmt.Sprintf("%s %s", FormatNumber(result.Result), to),
		ExchangeRate: fmt.Sprintf("Exchange rate: 1 %s = %s %s", from, FormatNumber(result.Rate), to),
	}
}

// FormatLastUpdate falls back to the raw value when it cannot be parsed.
func FormatLastUpdate(lastUpdate converter.LastUpdate, layout string, loc *time.Location) string {
	if layout == "" {
		layout = DefaultTimeFormat
	}

	t, err := lastUpdate.Time(loc)
	if err != nil {
		return "Last update: " + string(lastUpdate)
	}

	if loc != nil {
		t = t.In(loc)
	}

	return "Last update: " + t.Format(layout)
}
