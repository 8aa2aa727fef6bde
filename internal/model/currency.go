package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrUnknownPair     = errors.New("unknown currency pair")
)

// Currency is an ISO 4217 code of one of the supported central-bank currencies.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	AUD Currency = "AUD"
	NZD Currency = "NZD"
	JPY Currency = "JPY"
	CAD Currency = "CAD"
	CHF Currency = "CHF"
)

// Currencies lists the supported currencies.
var Currencies = []Currency{USD, EUR, GBP, AUD, NZD, JPY, CAD, CHF}

// ParseCurrency validates a 3-letter code, case-insensitively.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Currencies {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
}

// CurrencyPair is an ordered base/quote pair.
type CurrencyPair struct {
	Base  Currency
	Quote Currency
}

func (p CurrencyPair) String() string { return string(p.Base) + "/" + string(p.Quote) }

// Symbol returns the pair without separator, e.g. "EURUSD".
func (p CurrencyPair) Symbol() string { return string(p.Base) + string(p.Quote) }

// ParsePair parses "EUR/USD" and requires the pair to be in the Universe.
func ParsePair(s string) (CurrencyPair, error) {
	base, quote, ok := strings.Cut(s, "/")
	if !ok {
		return CurrencyPair{}, fmt.Errorf("%w: %q", ErrUnknownPair, s)
	}
	b, err := ParseCurrency(base)
	if err != nil {
		return CurrencyPair{}, err
	}
	q, err := ParseCurrency(quote)
	if err != nil {
		return CurrencyPair{}, err
	}
	p := CurrencyPair{Base: b, Quote: q}
	if !InUniverse(p) {
		return CurrencyPair{}, fmt.Errorf("%w: %q", ErrUnknownPair, s)
	}
	return p, nil
}

// Universe is the fixed, ordered set of tradable pairs. Scans walk it in this order.
var Universe = []CurrencyPair{
	{EUR, USD}, {GBP, USD}, {USD, JPY}, {USD, CHF}, {AUD, USD}, {USD, CAD}, {NZD, USD},
	{EUR, GBP}, {EUR, JPY}, {EUR, CHF}, {EUR, AUD}, {EUR, CAD}, {EUR, NZD},
	{GBP, JPY}, {GBP, CHF}, {GBP, AUD}, {GBP, CAD}, {GBP, NZD},
	{AUD, JPY}, {CAD, JPY}, {CHF, JPY}, {NZD, JPY},
	{AUD, CAD}, {AUD, CHF}, {AUD, NZD},
	{CAD, CHF}, {NZD, CAD}, {NZD, CHF},
}

// InUniverse reports whether p is one of the tradable pairs.
func InUniverse(p CurrencyPair) bool {
	for _, u := range Universe {
		if u == p {
			return true
		}
	}
	return false
}

// RateMap maps a currency to its central-bank policy rate in percent.
// It may cover only some of the supported currencies.
type RateMap map[Currency]float64

// Diff returns base rate minus quote rate. ok is false when either leg is missing.
func (r RateMap) Diff(p CurrencyPair) (diff float64, ok bool) {
	base, ok := r[p.Base]
	if !ok {
		return 0, false
	}
	quote, ok := r[p.Quote]
	if !ok {
		return 0, false
	}
	return base - quote, true
}

// Sorted returns the covered currencies in Currencies order.
func (r RateMap) Sorted() []Currency {
	out := make([]Currency, 0, len(r))
	for _, c := range Currencies {
		if _, ok := r[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
