package widget_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/widget"
)

type (
	mockAPI struct {
		mock.Mock
	}

	refreshState struct {
		Enabled bool
		Label   string
	}

	fakeView struct {
		mu            sync.Mutex
		options       []converter.CurrencyCode
		from          converter.CurrencyCode
		to            converter.CurrencyCode
		amount        string
		lastUpdate    string
		refreshStates []refreshState
		convertStates []bool
		result        *widget.Display
		notifications []widget.Notification
		dismissed     []string
	}
)

func (m *mockAPI) LastUpdate(ctx context.Context) (converter.LastUpdate, error) {
	args := m.Called(ctx)

	return args.Get(0).(converter.LastUpdate), args.Error(1)
}

func (m *mockAPI) UpdateRates(ctx context.Context) (converter.LastUpdate, error) {
	args := m.Called(ctx)

	return args.Get(0).(converter.LastUpdate), args.Error(1)
}

func (m *mockAPI) Convert(ctx context.Context, req converter.ConversionRequest) (converter.ConversionResult, error) {
	args := m.Called(ctx, req)

	return args.Get(0).(converter.ConversionResult), args.Error(1)
}

func (v *fakeView) SetCurrencyOptions(codes []converter.CurrencyCode) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.options = append([]converter.CurrencyCode(nil), codes...)
}

func (v *fakeView) selectable(code converter.CurrencyCode) converter.CurrencyCode {
	for _, option := range v.options {
		if option == code {
			return code
		}
	}

	return ""
}

func (v *fakeView) SelectFrom(code converter.CurrencyCode) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.from = v.selectable(code)
}

func (v *fakeView) SelectTo(code converter.CurrencyCode) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.to = v.selectable(code)
}

func (v *fakeView) SelectedFrom() converter.CurrencyCode {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.from
}

func (v *fakeView) SelectedTo() converter.CurrencyCode {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.to
}

func (v *fakeView) AmountInput() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.amount
}

func (v *fakeView) SetLastUpdate(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lastUpdate = text
}

func (v *fakeView) SetRefreshState(enabled bool, label string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.refreshStates = append(v.refreshStates, refreshState{Enabled: enabled, Label: label})
}

func (v *fakeView) SetConvertEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.convertStates = append(v.convertStates, enabled)
}

func (v *fakeView) ShowResult(d widget.Display) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.result = &d
}

func (v *fakeView) HideResult() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.result = nil
}

func (v *fakeView) ShowNotification(n widget.Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.notifications = append(v.notifications, n)
}

func (v *fakeView) DismissNotification(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.dismissed = append(v.dismissed, id)
}

func (v *fakeView) setAmount(amount string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.amount = amount
}

func (v *fakeView) lastNotification() widget.Notification {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.notifications) == 0 {
		return widget.Notification{}
	}

	return v.notifications[len(v.notifications)-1]
}

func (v *fakeView) shownResult() *widget.Display {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.result
}

func (v *fakeView) lastRefreshState() refreshState {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.refreshStates[len(v.refreshStates)-1]
}

func (v *fakeView) lastConvertState() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.convertStates[len(v.convertStates)-1]
}

func (v *fakeView) dismissedIDs() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]string(nil), v.dismissed...)
}
