package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CURRENCY_CODES_SYMBOLS is a map of 3 digit ISO currency codes to their symbols
var CURRENCY_CODES_SYMBOLS = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"all": "L",
	"aud": "AU$",
	"cad": "CA$",
	"chf": "CHF",
	"jpy": "¥",
	"inr": "₹",
}

// zeroDecimalCurrencies are formatted without fractional digits.
var zeroDecimalCurrencies = map[string]bool{
	"all": true,
	"jpy": true,
}

// DefaultExchangeRates are the static fallback rates relative to USD,
// used whenever the live rate fetch fails or has never succeeded.
var DefaultExchangeRates = map[string]decimal.Decimal{
	"usd": decimal.NewFromInt(1),
	"eur": decimal.RequireFromString("0.92"),
	"gbp": decimal.RequireFromString("0.79"),
	"all": decimal.RequireFromString("93.5"),
}

// BaseCurrency is the pivot currency for all conversions.
const BaseCurrency = "usd"

// NormalizeCurrency lowercases a currency code for lookups.
func NormalizeCurrency(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// GetCurrencySymbol returns the symbol for a given currency code
// if the code is not found, it returns the code itself
func GetCurrencySymbol(code string) string {
	if symbol, ok := CURRENCY_CODES_SYMBOLS[NormalizeCurrency(code)]; ok {
		return symbol
	}
	return code
}

// IsZeroDecimalCurrency reports whether amounts in the currency are
// displayed without fractional digits (e.g. Albanian Lek).
func IsZeroDecimalCurrency(code string) bool {
	return zeroDecimalCurrencies[NormalizeCurrency(code)]
}

// FormatAmount renders an amount with the currency's symbol and its
// conventional number of decimal places.
func FormatAmount(amount decimal.Decimal, code string) string {
	symbol := GetCurrencySymbol(code)
	if IsZeroDecimalCurrency(code) {
		return fmt.Sprintf("%s%s", symbol, amount.Round(0).StringFixed(0))
	}
	return fmt.Sprintf("%s%s", symbol, amount.StringFixed(2))
}
