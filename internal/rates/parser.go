package rates

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"CarrySentinel/internal/model"
)

var ErrNoRates = errors.New("no valid interest rate data found")

// BankCurrency maps central-bank names to the currency they set rates for.
var BankCurrency = map[string]model.Currency{
	"Federal Reserve":             model.USD,
	"European Central Bank":       model.EUR,
	"Bank of England":             model.GBP,
	"Reserve Bank of Australia":   model.AUD,
	"Reserve Bank of New Zealand": model.NZD,
	"Bank of Japan":               model.JPY,
	"Bank of Canada":              model.CAD,
	"Swiss National Bank":         model.CHF,
}

// SampleTable is an example of the accepted input format.
const SampleTable = `Federal Reserve 5.50%
European Central Bank 4.50%
Bank of England 5.25%
Reserve Bank of Australia 4.35%
Reserve Bank of New Zealand 5.50%
Bank of Japan 0.10%
Bank of Canada 5.00%
Swiss National Bank 1.75%`

var lineRe = regexp.MustCompile(`^(.+?)\s+(-?[\d.]+)\s*%?`)

// Parse reads a pasted rate table, one "<bank or currency> <rate>[%]" per line.
// Unrecognised lines are skipped; later lines override earlier ones.
func Parse(text string) (model.RateMap, error) {
	rates := model.RateMap{}
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		cur, ok := lookupCurrency(m[1])
		if !ok {
			continue
		}
		rate, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		rates[cur] = rate
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read rate table: %w", err)
	}
	if len(rates) == 0 {
		return nil, ErrNoRates
	}
	return rates, nil
}

func lookupCurrency(name string) (model.Currency, bool) {
	name = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(name), ":"))
	if c, ok := BankCurrency[name]; ok {
		return c, true
	}
	for bank, c := range BankCurrency {
		if strings.EqualFold(bank, name) {
			return c, true
		}
	}
	if c, err := model.ParseCurrency(name); err == nil {
		return c, true
	}
	return "", false
}

// Format renders rates in the table format Parse accepts, using currency codes.
func Format(rates model.RateMap) string {
	var b strings.Builder
	for _, c := range rates.Sorted() {
		fmt.Fprintf(&b, "%s %.2f%%\n", c, rates[c])
	}
	return b.String()
}
