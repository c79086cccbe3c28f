package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	converter "github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/client"
	"github.com/malusev998/currency-converter/widget"
)

const EnvPrefix = "CURRENCY_CONVERTER"

type Settings struct {
	URL             string
	Timeout         time.Duration
	NotificationTTL time.Duration
	DefaultFrom     converter.CurrencyCode
	DefaultTo       converter.CurrencyCode
	TimeFormat      string
	Location        *time.Location
	Debug           bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", client.DefaultURL)
	v.SetDefault("api.timeout", client.DefaultTimeout)
	v.SetDefault("notifications.ttl", widget.DefaultNotificationTTL)
	v.SetDefault("defaults.from", converter.USD.String())
	v.SetDefault("defaults.to", converter.EUR.String())
	v.SetDefault("display.time_format", widget.DefaultTimeFormat)
	v.SetDefault("display.location", "Local")
	v.SetDefault("debug", false)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"api.url":     "url",
		"api.timeout": "timeout",
		"debug":       "debug",
	}

	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	return nil
}

func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		absolutePath, err := filepath.Abs(configFile)
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}

		v.SetConfigFile(absolutePath)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error while reading in the config file: %w", err)
		}

		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("error while reading in the config file: %w", err)
	}

	return nil
}

// loadSettings resolves flags, environment (.env included), config file and
// defaults, in that order of precedence.
func loadSettings(v *viper.Viper, flags *pflag.FlagSet, configFile string) (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("error loading .env file: %w", err)
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, flags); err != nil {
		return Settings{}, err
	}

	if err := readConfigFile(v, configFile); err != nil {
		return Settings{}, err
	}

	from, err := converter.ParseCurrencyCode(v.GetString("defaults.from"))
	if err != nil {
		return Settings{}, fmt.Errorf("defaults.from: %w", err)
	}

	to, err := converter.ParseCurrencyCode(v.GetString("defaults.to"))
	if err != nil {
		return Settings{}, fmt.Errorf("defaults.to: %w", err)
	}

	location, err := time.LoadLocation(v.GetString("display.location"))
	if err != nil {
		return Settings{}, fmt.Errorf("display.location: %w", err)
	}

	return Settings{
		URL:             v.GetString("api.url"),
		Timeout:         v.GetDuration("api.timeout"),
		NotificationTTL: v.GetDuration("notifications.ttl"),
		DefaultFrom:     from,
		DefaultTo:       to,
		TimeFormat:      v.GetString("display.time_format"),
		Location:        location,
		Debug:           v.GetBool("debug"),
	}, nil
}
