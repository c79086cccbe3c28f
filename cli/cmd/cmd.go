package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/client"
	"github.com/malusev998/currency-converter/logger"
	"github.com/malusev998/currency-converter/terminal"
	"github.com/malusev998/currency-converter/widget"
)

const serviceName = "currency-converter"

type (
	// Config carries what the commands share. Logger and API are built from
	// Settings when left nil.
	Config struct {
		Ctx    context.Context
		Logger *zap.Logger
		API    converter.RatesAPI

		settings   Settings
		configFile string
		noColor    bool
	}
)

func (c *Config) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}

	return c.Ctx
}

func (c *Config) prepare(cmd *cobra.Command, v *viper.Viper) error {
	settings, err := loadSettings(v, cmd.Root().PersistentFlags(), c.configFile)
	if err != nil {
		return err
	}

	c.settings = settings

	if c.noColor {
		color.NoColor = true
	}

	if c.Logger == nil {
		l, err := logger.New(serviceName, settings.Debug)
		if err != nil {
			return err
		}

		c.Logger = l
	}

	if c.API == nil {
		c.API = client.New(client.Config{
			URL:     settings.URL,
			Timeout: settings.Timeout,
			Logger:  c.Logger.Named("client"),
		})
	}

	return nil
}

func (c *Config) newController(view widget.View) *widget.Controller {
	return widget.New(widget.Config{
		API:             c.API,
		View:            view,
		Logger:          c.Logger.Named("widget"),
		NotificationTTL: c.settings.NotificationTTL,
		DefaultFrom:     c.settings.DefaultFrom,
		DefaultTo:       c.settings.DefaultTo,
		TimeFormat:      c.settings.TimeFormat,
		Location:        c.settings.Location,
	})
}

func (c *Config) newSession(cmd *cobra.Command) (*widget.Controller, *terminal.View) {
	view := terminal.New(cmd.OutOrStdout())

	return c.newController(view), view
}

func NewRootCommand(config *Config) *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "currency-converter",
		Short:         "Currency converter client",
		Version:       "v1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.prepare(cmd, v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&config.configFile, "config", "", "Path to config file (default ./config.yml when present)")
	flags.String("url", client.DefaultURL, "Backend base URL")
	flags.Duration("timeout", client.DefaultTimeout, "Backend request timeout")
	flags.Bool("debug", false, "Debug flag")
	flags.BoolVar(&config.noColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(
		currencies(),
		lastUpdate(config),
		refresh(config),
		convert(config),
		interactive(config),
	)

	return rootCmd
}

func Execute(config *Config) error {
	return NewRootCommand(config).Execute()
}
