package widget

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	converter "github.com/malusev998/currency-converter"
)

const (
	LabelRefresh  = "Update Rates"
	LabelUpdating = "↻ Updating..."

	MsgRatesUpdated      = "Exchange rates updated successfully!"
	MsgRatesUpdateFailed = "Failed to update exchange rates."
	MsgRatesUpdateError  = "An error occurred while updating rates."
	MsgInvalidInput      = "Please fill all fields with valid values."
	MsgConversionFailed  = "Conversion failed"
	MsgConversionError   = "An error occurred during conversion."
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBusy         = errors.New("request already in flight")
)

type (
	Config struct {
		API             converter.RatesAPI
		View            View
		Logger          *zap.Logger
		NotificationTTL time.Duration
		DefaultFrom     converter.CurrencyCode
		DefaultTo       converter.CurrencyCode
		TimeFormat      string
		Location        *time.Location
	}

	// Controller binds the form controls of a View to the backend.
	// Every action renders its own outcome; the returned error is only
	// informational for callers that need an exit status.
	Controller struct {
		api         converter.RatesAPI
		view        View
		notifier    *Notifier
		logger      *zap.Logger
		defaultFrom converter.CurrencyCode
		defaultTo   converter.CurrencyCode
		timeFormat  string
		location    *time.Location

		refreshing atomic.Bool
		converting atomic.Bool
	}
)

func New(c Config) *Controller {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	from := c.DefaultFrom
	if from == "" {
		from = converter.USD
	}

	to := c.DefaultTo
	if to == "" {
		to = converter.EUR
	}

	loc := c.Location
	if loc == nil {
		loc = time.Local
	}

	timeFormat := c.TimeFormat
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}

	return &Controller{
		api:         c.API,
		view:        c.View,
		notifier:    NewNotifier(c.View, c.NotificationTTL),
		logger:      logger,
		defaultFrom: from,
		defaultTo:   to,
		timeFormat:  timeFormat,
		location:    loc,
	}
}

// Initialize populates the form and loads the last update label.
func (c *Controller) Initialize(ctx context.Context) error {
	c.Populate()

	return c.LoadLastUpdate(ctx)
}

// Populate fills both selectors in Currencies order and selects the defaults.
func (c *Controller) Populate() {
	c.view.SetCurrencyOptions(converter.Currencies)
	c.view.SelectFrom(c.defaultFrom)
	c.view.SelectTo(c.defaultTo)
	c.view.HideResult()
	c.view.SetRefreshState(true, LabelRefresh)
	c.view.SetConvertEnabled(true)
}

func (c *Controller) LoadLastUpdate(ctx context.Context) error {
	lastUpdate, err := c.api.LastUpdate(ctx)
	if err != nil {
		var bizErr *converter.BusinessError

		if errors.As(err, &bizErr) {
			c.logger.Debug("last update not available", zap.String("message", bizErr.Message))
		} else {
			c.logger.Error("error loading last update", zap.Error(err))
		}

		return err
	}

	c.view.SetLastUpdate(FormatLastUpdate(lastUpdate, c.timeFormat, c.location))

	return nil
}

func (c *Controller) RefreshRates(ctx context.Context) error {
	if !c.refreshing.CompareAndSwap(false, true) {
		c.logger.Debug("refresh ignored, previous request still in flight")
		return ErrBusy
	}

	defer c.refreshing.Store(false)

	c.view.SetRefreshState(false, LabelUpdating)
	defer c.view.SetRefreshState(true, LabelRefresh)

	lastUpdate, err := c.api.UpdateRates(ctx)
	if err != nil {
		var bizErr *converter.BusinessError

		if errors.As(err, &bizErr) {
			c.logger.Warn("rates update rejected", zap.String("message", bizErr.Message), zap.Int("http_status", bizErr.HTTPStatus))
			c.notifier.Error(MsgRatesUpdateFailed)
		} else {
			c.logger.Error("error updating rates", zap.Error(err))
			c.notifier.Error(MsgRatesUpdateError)
		}

		return err
	}

	c.view.SetLastUpdate(FormatLastUpdate(lastUpdate, c.timeFormat, c.location))
	c.notifier.Success(MsgRatesUpdated)

	return nil
}

func (c *Controller) SwapCurrencies() {
	from := c.view.SelectedFrom()
	to := c.view.SelectedTo()

	c.view.SelectFrom(to)
	c.view.SelectTo(from)
}

func (c *Controller) Convert(ctx context.Context) error {
	req, err := c.buildRequest()
	if err != nil {
		c.logger.Debug("conversion input rejected", zap.Error(err))
		c.view.HideResult()
		c.notifier.Error(MsgInvalidInput)

		return err
	}

	if !c.converting.CompareAndSwap(false, true) {
		c.logger.Debug("convert ignored, previous request still in flight")
		return ErrBusy
	}

	defer c.converting.Store(false)

	c.view.SetConvertEnabled(false)
	defer c.view.SetConvertEnabled(true)

	result, err := c.api.Convert(ctx, req)
	if err != nil {
		c.view.HideResult()

		var bizErr *converter.BusinessError

		if errors.As(err, &bizErr) {
			message := bizErr.Message
			if message == "" {
				message = MsgConversionFailed
			}

			c.logger.Warn("conversion rejected", zap.String("message", bizErr.Message), zap.Int("http_status", bizErr.HTTPStatus))
			c.notifier.Error(message)
		} else {
			c.logger.Error("error converting currency", zap.Error(err))
			c.notifier.Error(MsgConversionError)
		}

		return err
	}

	c.view.ShowResult(FormatDisplay(req.Amount, req.From, req.To, result))

	return nil
}

func (c *Controller) buildRequest() (converter.ConversionRequest, error) {
	from := c.view.SelectedFrom()
	to := c.view.SelectedTo()

	if from == "" || to == "" {
		return converter.ConversionRequest{}, fmt.Errorf("%w: currency not selected", ErrInvalidInput)
	}

	amount, err := ParseAmount(c.view.AmountInput())
	if err != nil {
		return converter.ConversionRequest{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	req := converter.ConversionRequest{
		From:   from,
		To:     to,
		Amount: amount,
	}

	if err := req.Validate(); err != nil {
		return converter.ConversionRequest{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return req, nil
}

// Close cancels pending notification dismissals.
func (c *Controller) Close() {
	c.notifier.Stop()
}
