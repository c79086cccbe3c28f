package converter

import (
	"context"
	"fmt"
)

const StatusSuccess = "success"

type (
	// RatesAPI is the backend the widget talks to.
	RatesAPI interface {
		LastUpdate(ctx context.Context) (LastUpdate, error)
		UpdateRates(ctx context.Context) (LastUpdate, error)
		Convert(ctx context.Context, req ConversionRequest) (ConversionResult, error)
	}

	// BusinessError is a well formed backend answer whose status is not success.
	BusinessError struct {
		Status     string `json:"status"`
		Message    string `json:"message"`
		HTTPStatus int    `json:"-"`
	}
)

func (e *BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("request finished with status %q (http %d)", e.Status, e.HTTPStatus)
}
