package converter

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidRequest = errors.New("invalid conversion request")

	validate = validator.New()
)

type (
	ConversionRequest struct {
		From   CurrencyCode `json:"from_currency" validate:"required,iso4217"`
		To     CurrencyCode `json:"to_currency" validate:"required,iso4217"`
		Amount float64      `json:"amount" validate:"gt=0"`
	}

	ConversionResult struct {
		Result float64 `json:"result"`
		Rate   float64 `json:"rate"`
	}

	// LastUpdate is the backend's ISO timestamp of the newest stored rate.
	LastUpdate string
)

func (r ConversionRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	return nil
}

var lastUpdateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Time parses the timestamp. Values without a zone are read in loc.
func (l LastUpdate) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range lastUpdateLayouts {
		if t, err := time.ParseInLocation(layout, string(l), loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("value %q is not a valid timestamp", string(l))
}
