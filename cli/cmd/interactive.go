package cmd

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/terminal"
	"github.com/malusev998/currency-converter/widget"
)

const interactiveHelp = `Commands:
  from CODE      select the currency to convert from
  to CODE        select the currency to convert to
  amount N       set the amount
  swap           swap the selected currencies
  convert [N]    convert the amount
  refresh        refresh exchange rates
  show           print the form
  currencies     list supported currencies
  help           print this help
  quit           leave
`

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	return lines
}

type session struct {
	ctx        context.Context
	group      *errgroup.Group
	controller *widget.Controller
	view       *terminal.View
}

// handle runs one input line and reports whether the session should go on.
// Conversions and refreshes run in the background like clicks on a page.
func (s *session) handle(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	command, rest := strings.ToLower(fields[0]), fields[1:]

	switch command {
	case "quit", "exit":
		return false
	case "help":
		s.view.Printf("%s", interactiveHelp)
	case "show":
		s.view.Render()
	case "currencies":
		for _, c := range converter.Currencies {
			s.view.Printf("%s\n", c)
		}
	case "from", "to":
		if len(rest) != 1 {
			s.view.Printf("usage: %s CODE\n", command)
			return true
		}

		code, err := converter.ParseCurrencyCode(rest[0])
		if err != nil {
			s.view.Printf("%v\n", err)
			return true
		}

		if command == "from" {
			s.view.SelectFrom(code)
		} else {
			s.view.SelectTo(code)
		}
	case "amount":
		s.view.SetAmount(strings.Join(rest, " "))
	case "swap":
		s.controller.SwapCurrencies()
	case "convert":
		if len(rest) > 0 {
			s.view.SetAmount(strings.Join(rest, " "))
		}

		s.group.Go(func() error {
			_ = s.controller.Convert(s.ctx)
			return nil
		})
	case "refresh":
		s.group.Go(func() error {
			_ = s.controller.RefreshRates(s.ctx)
			return nil
		})
	default:
		s.view.Printf("unknown command %q, type help\n", command)
	}

	return true
}

func interactive(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Drive the converter form from standard input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, view := config.newSession(cmd)
			defer controller.Close()

			group, ctx := errgroup.WithContext(config.context())
			s := &session{
				ctx:        ctx,
				group:      group,
				controller: controller,
				view:       view,
			}

			_ = controller.Initialize(ctx)

			in := cmd.InOrStdin()
			prompt := isTerminal(in)
			lines := readLines(ctx, in)

		loop:
			for {
				if prompt {
					view.Printf("> ")
				}

				select {
				case line, more := <-lines:
					if !more || !s.handle(line) {
						break loop
					}
				case <-ctx.Done():
					break loop
				}
			}

			return group.Wait()
		},
	}
}
