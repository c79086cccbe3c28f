package widget

import (
	converter "github.com/malusev998/currency-converter"
)

type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
)

type (
	Notification struct {
		ID      string
		Kind    NotificationKind
		Message string
	}

	// Display is what the result box shows after a successful conversion.
	Display struct {
		FromAmount   string
		ToAmount     string
		ExchangeRate string
	}

	// View is the handle to every control the controller reads or writes.
	// Selecting a code that is not among the options leaves the selector
	// empty.
	View interface {
		SetCurrencyOptions(codes []converter.CurrencyCode)
		SelectFrom(code converter.CurrencyCode)
		SelectTo(code converter.CurrencyCode)
		SelectedFrom() converter.CurrencyCode
		SelectedTo() converter.CurrencyCode
		AmountInput() string

		SetLastUpdate(text string)
		SetRefreshState(enabled bool, label string)
		SetConvertEnabled(enabled bool)

		ShowResult(d Display)
		HideResult()

		ShowNotification(n Notification)
		DismissNotification(id string)
	}
)
