// Package terminal renders the converter form to a text terminal.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/widget"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	resultColor  = color.New(color.FgCyan, color.Bold)
	mutedColor   = color.New(color.Faint)
)

// View keeps the form state in memory and prints every visible change.
type View struct {
	mu  sync.Mutex
	out io.Writer

	options        []converter.CurrencyCode
	from           converter.CurrencyCode
	to             converter.CurrencyCode
	amount         string
	lastUpdate     string
	refreshEnabled bool
	refreshLabel   string
	convertEnabled bool
	result         *widget.Display
	notifications  []widget.Notification
}

var _ widget.View = (*View)(nil)

func New(out io.Writer) *View {
	return &View{
		out:            out,
		refreshEnabled: true,
		refreshLabel:   widget.LabelRefresh,
		convertEnabled: true,
	}
}

func (v *View) SetCurrencyOptions(codes []converter.CurrencyCode) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.options = append([]converter.CurrencyCode(nil), codes...)

	if !v.isOption(v.from) {
		v.from = ""
	}

	if !v.isOption(v.to) {
		v.to = ""
	}
}

func (v *View) isOption(code converter.CurrencyCode) bool {
	for _, option := range v.options {
		if option == code {
			return true
		}
	}

	return false
}

// SelectFrom behaves like a select element: unknown codes clear the selection.
func (v *View) SelectFrom(code converter.CurrencyCode) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.isOption(code) {
		code = ""
	}

	v.from = code
}

func (v *View) SelectTo(code converter.CurrencyCode) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.isOption(code) {
		code = ""
	}

	v.to = code
}

func (v *View) SelectedFrom() converter.CurrencyCode {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.from
}

func (v *View) SelectedTo() converter.CurrencyCode {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.to
}

func (v *View) SetAmount(amount string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.amount = amount
}

func (v *View) AmountInput() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.amount
}

func (v *View) Options() []converter.CurrencyCode {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]converter.CurrencyCode(nil), v.options...)
}

func (v *View) SetLastUpdate(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lastUpdate = text
	_, _ = mutedColor.Fprintln(v.out, text)
}

func (v *View) LastUpdate() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.lastUpdate
}

func (v *View) SetRefreshState(enabled bool, label string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.refreshEnabled = enabled
	v.refreshLabel = label

	if !enabled {
		_, _ = mutedColor.Fprintln(v.out, label)
	}
}

func (v *View) RefreshEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.refreshEnabled
}

func (v *View) SetConvertEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.convertEnabled = enabled
}

func (v *View) ConvertEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.convertEnabled
}

func (v *View) ShowResult(d widget.Display) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.result = &d
	v.printResult()
}

func (v *View) printResult() {
	_, _ = resultColor.Fprintf(v.out, "%s = %s\n", v.result.FromAmount, v.result.ToAmount)
	_, _ = fmt.Fprintln(v.out, v.result.ExchangeRate)
}

func (v *View) HideResult() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.result = nil
}

// Result returns the shown conversion or nil while the result box is hidden.
func (v *View) Result() *widget.Display {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.result == nil {
		return nil
	}

	d := *v.result

	return &d
}

func (v *View) ShowNotification(n widget.Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.notifications = append(v.notifications, n)

	if n.Kind == widget.KindError {
		_, _ = errorColor.Fprintf(v.out, "✖ %s\n", n.Message)
		return
	}

	_, _ = successColor.Fprintf(v.out, "✔ %s\n", n.Message)
}

func (v *View) DismissNotification(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, n := range v.notifications {
		if n.ID == id {
			v.notifications = append(v.notifications[:i], v.notifications[i+1:]...)
			return
		}
	}
}

// Notifications returns the notifications still on screen.
func (v *View) Notifications() []widget.Notification {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]widget.Notification(nil), v.notifications...)
}

// Printf writes free text without interleaving it with form updates.
func (v *View) Printf(format string, args ...interface{}) {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, _ = fmt.Fprintf(v.out, format, args...)
}

// Render prints the whole form.
func (v *View) Render() {
	v.mu.Lock()
	defer v.mu.Unlock()

	codes := make([]string, 0, len(v.options))
	for _, option := range v.options {
		codes = append(codes, option.String())
	}

	_, _ = fmt.Fprintf(v.out, "Currencies: %s\n", strings.Join(codes, " "))
	_, _ = fmt.Fprintf(v.out, "From: %s  To: %s  Amount: %s\n", placeholder(string(v.from)), placeholder(string(v.to)), placeholder(v.amount))

	if v.lastUpdate != "" {
		_, _ = mutedColor.Fprintln(v.out, v.lastUpdate)
	}

	refresh := fmt.Sprintf("[%s]", v.refreshLabel)
	if !v.refreshEnabled {
		refresh += " (busy)"
	}

	convert := "[Convert]"
	if !v.convertEnabled {
		convert += " (busy)"
	}

	_, _ = fmt.Fprintf(v.out, "%s %s\n", refresh, convert)

	if v.result != nil {
		v.printResult()
	}

	for _, n := range v.notifications {
		_, _ = mutedColor.Fprintf(v.out, "(%s) %s\n", n.Kind, n.Message)
	}
}

func placeholder(value string) string {
	if value == "" {
		return "-"
	}

	return value
}
