package converter

import (
	"fmt"
	"strings"
)

type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
	GBP CurrencyCode = "GBP"
	JPY CurrencyCode = "JPY"
	CAD CurrencyCode = "CAD"
	AUD CurrencyCode = "AUD"
	CHF CurrencyCode = "CHF"
	CNY CurrencyCode = "CNY"
	RUB CurrencyCode = "RUB"
)

// Currencies is the supported set in the order the selectors list them.
var Currencies = []CurrencyCode{USD, EUR, GBP, JPY, CAD, AUD, CHF, CNY, RUB}

func (c CurrencyCode) String() string {
	return string(c)
}

func (c CurrencyCode) IsSupported() bool {
	for _, supported := range Currencies {
		if c == supported {
			return true
		}
	}

	return false
}

func ParseCurrencyCodes(strs []string) ([]CurrencyCode, error) {
	codes := make([]CurrencyCode, 0, len(strs))

	for _, str := range strs {
		code, err := ParseCurrencyCode(str)
		if err != nil {
			return nil, err
		}

		codes = append(codes, code)
	}

	return codes, nil
}

func ParseCurrencyCode(str string) (CurrencyCode, error) {
	code := CurrencyCode(strings.ToUpper(strings.TrimSpace(str)))

	if !code.IsSupported() {
		return "", fmt.Errorf("value %s is not a supported currency", str)
	}

	return code, nil
}
