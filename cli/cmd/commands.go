package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	converter "github.com/malusev998/currency-converter"
)

func currencies() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies [CODE...]",
		Short: "List supported currencies, or check the given codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := converter.Currencies

			if len(args) > 0 {
				var err error

				if codes, err = converter.ParseCurrencyCodes(args); err != nil {
					return err
				}
			}

			for _, c := range codes {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}

			return nil
		},
	}
}

func lastUpdate(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "last-update",
		Short: "Show when the exchange rates were last updated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, _ := config.newSession(cmd)
			defer controller.Close()

			return controller.Initialize(config.context())
		},
	}
}

func refreshCobraCommand(config *Config, standalone *bool, after *time.Duration) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if *standalone && *after <= 0 {
			return errors.New("--after must be a positive duration")
		}

		ctx := config.context()
		controller, _ := config.newSession(cmd)
		defer controller.Close()

		controller.Populate()

		err := controller.RefreshRates(ctx)

		if !*standalone {
			return err
		}

		if err != nil {
			config.Logger.Warn("initial refresh failed", zap.Error(err))
		}

		ticker := time.NewTicker(*after)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := controller.RefreshRates(ctx); err != nil {
					config.Logger.Warn("scheduled refresh failed", zap.Error(err))
				}
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func refresh(config *Config) *cobra.Command {
	var standalone bool
	var after time.Duration

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Ask the backend to refresh exchange rates",
		Args:  cobra.NoArgs,
	}

	refreshCmd.RunE = refreshCobraCommand(config, &standalone, &after)
	refreshCmd.Flags().BoolVar(&standalone, "standalone", false, "Keep refreshing until interrupted")
	refreshCmd.Flags().DurationVar(&after, "after", time.Hour, "Refresh interval for the standalone process")

	return refreshCmd
}

func convert(config *Config) *cobra.Command {
	var from, to string
	var swap bool

	convertCmd := &cobra.Command{
		Use:   "convert AMOUNT",
		Short: "Convert an amount between two currencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, view := config.newSession(cmd)
			defer controller.Close()

			controller.Populate()

			if from != "" {
				code, err := converter.ParseCurrencyCode(from)
				if err != nil {
					return err
				}

				view.SelectFrom(code)
			}

			if to != "" {
				code, err := converter.ParseCurrencyCode(to)
				if err != nil {
					return err
				}

				view.SelectTo(code)
			}

			if swap {
				controller.SwapCurrencies()
			}

			view.SetAmount(args[0])

			return controller.Convert(config.context())
		},
	}

	convertCmd.Flags().StringVarP(&from, "from", "f", "", "Currency to convert from (default from config)")
	convertCmd.Flags().StringVarP(&to, "to", "t", "", "Currency to convert to (default from config)")
	convertCmd.Flags().BoolVarP(&swap, "swap", "s", false, "Swap the from and to currencies before converting")

	return convertCmd
}
