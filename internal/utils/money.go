package utils

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the smallest currency unit (cents).
// Using int64 keeps ledger arithmetic exact; the decimal package is only
// involved at the edges where amounts are parsed from or rendered to text.
type Money int64

// MaxMoney is the largest amount a Money can hold.
const MaxMoney = Money(math.MaxInt64)

// Currency represents a currency with its formatting rules
type Currency struct {
	Code         string // ISO 4217 code (e.g., "TRY")
	Symbol       string // Display symbol (e.g., "₺")
	SymbolFirst  bool   // True if symbol comes before amount
	ThousandsSep string // Thousands separator
	DecimalSep   string // Decimal separator
}

// Currencies the ledger knows how to format. All of them use two decimals.
var Currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", SymbolFirst: true, ThousandsSep: ",", DecimalSep: "."},
	"EUR": {Code: "EUR", Symbol: "€", SymbolFirst: true, ThousandsSep: ".", DecimalSep: ","},
	"TRY": {Code: "TRY", Symbol: "₺", SymbolFirst: true, ThousandsSep: ".", DecimalSep: ","},
}

// DefaultCurrency is used when a currency code is not found
var DefaultCurrency = Currencies["USD"]

// NewMoney creates a Money value from major units and minor units
func NewMoney(major int64, cents int) Money {
	return Money(major*100 + int64(cents))
}

// Cents creates a Money value from cents/minor units only
func Cents(cents int64) Money {
	return Money(cents)
}

// Dollars creates a Money value from whole major units
func Dollars(dollars int64) Money {
	return Money(dollars * 100)
}

// FromFloat creates a Money value from a float64 (use with caution)
// This rounds to the nearest cent
func FromFloat(amount float64) Money {
	return FromDecimal(decimal.NewFromFloat(amount))
}

// FromDecimal converts a decimal amount to Money, rounding half away from
// zero to the nearest cent.
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Round(2).Shift(2).IntPart())
}

// Parse errors for amounts that cannot be held exactly in cents.
var (
	ErrAmountOutOfRange = errors.New("amount out of range")
	ErrAmountPrecision  = errors.New("amount has more than two decimal places")
)

// ParseMoney parses a decimal string such as "2500", "2500.5" or "-12.34".
// Amounts with fractional cents or outside the int64 cent range are
// rejected rather than rounded or truncated.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("invalid amount %q: %w", s, ErrAmountPrecision)
	}
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("invalid amount %q: %w", s, ErrAmountOutOfRange)
	}
	return Money(cents.IntPart()), nil
}

// Decimal returns the value as an exact decimal in major units
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// ToCents returns the value in cents (the underlying representation)
func (m Money) ToCents() int64 {
	return int64(m)
}

// ToDollars returns the value as a float64 (for display purposes only)
func (m Money) ToDollars() float64 {
	return m.Decimal().InexactFloat64()
}

// DollarsPart returns just the whole major-unit portion
func (m Money) DollarsPart() int64 {
	return int64(m) / 100
}

// CentsPart returns just the cents portion (0-99)
func (m Money) CentsPart() int {
	cents := int(int64(m) % 100)
	if cents < 0 {
		cents = -cents
	}
	return cents
}

// Add returns the sum of two Money values
func (m Money) Add(other Money) Money {
	return m + other
}

// CheckedAdd returns the sum and false when it would overflow int64 cents.
func (m Money) CheckedAdd(other Money) (Money, bool) {
	sum := m + other
	if (other > 0 && sum < m) || (other < 0 && sum > m) {
		return 0, false
	}
	return sum, true
}

// Sub returns the difference of two Money values
func (m Money) Sub(other Money) Money {
	return m - other
}

// Mul multiplies by an integer
func (m Money) Mul(n int64) Money {
	return Money(int64(m) * n)
}

// Neg returns the negated value
func (m Money) Neg() Money {
	return -m
}

// IsZero returns true if the value is zero
func (m Money) IsZero() bool {
	return m == 0
}

// IsPositive returns true if the value is positive
func (m Money) IsPositive() bool {
	return m > 0
}

// IsNegative returns true if the value is negative
func (m Money) IsNegative() bool {
	return m < 0
}

// String returns a simple string representation (e.g., "123.45")
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Format formats the money value with the given currency
func (m Money) Format(currencyCode string) string {
	currency := GetCurrency(currencyCode)

	negative := m < 0
	if negative {
		m = -m
	}

	wholeStr := formatWithSeparator(m.DollarsPart(), currency.ThousandsSep)
	result := fmt.Sprintf("%s%s%02d", wholeStr, currency.DecimalSep, m.CentsPart())

	if currency.SymbolFirst {
		result = currency.Symbol + result
	} else {
		result = result + " " + currency.Symbol
	}

	if negative {
		result = "-" + result
	}

	return result
}

// FormatSimple formats the money value with a simple format (e.g., "$123.45")
func (m Money) FormatSimple(symbol string) string {
	if m < 0 {
		return "-" + symbol + m.Neg().String()
	}
	return symbol + m.String()
}

// formatWithSeparator adds thousands separators to a number
func formatWithSeparator(n int64, sep string) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 || sep == "" {
		return str
	}

	var result strings.Builder
	startOffset := len(str) % 3
	if startOffset == 0 {
		startOffset = 3
	}

	result.WriteString(str[:startOffset])
	for i := startOffset; i < len(str); i += 3 {
		result.WriteString(sep)
		result.WriteString(str[i : i+3])
	}

	return result.String()
}

// GetCurrency returns the currency configuration for a code, or the default if not found
func GetCurrency(code string) Currency {
	if c, ok := Currencies[code]; ok {
		return c
	}
	return DefaultCurrency
}

// MarshalJSON renders the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if len(data) >= 2 && data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("invalid amount %s: %w", data, err)
		}
		data = []byte(unquoted)
	}
	parsed, err := ParseMoney(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText is used by text-based encoders such as YAML.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a decimal string.
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := ParseMoney(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// RandomAmount generates a random money amount in the given range using the provided RNG
func RandomAmount(rng *Random, min, max Money) Money {
	if min >= max {
		return min
	}
	return Money(rng.Int64Range(int64(min), int64(max)))
}

// RoundToNearest rounds the money to the nearest multiple of 'nearest'
// e.g., Money(123).RoundToNearest(Dollars(5)) returns $120 or $125
func (m Money) RoundToNearest(nearest Money) Money {
	if nearest <= 0 {
		return m
	}
	half := nearest / 2
	return ((m + half) / nearest) * nearest
}
