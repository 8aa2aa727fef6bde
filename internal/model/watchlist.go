package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidConfidence = errors.New("invalid confidence tier")

// Direction is the proposed position for a pair.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
	DirectionRange Direction = "RANGE"
	DirectionAvoid Direction = "AVOID"
	DirectionWait  Direction = "WAIT"
)

// Actionable reports whether the direction can become a trading signal.
// AVOID and WAIT are informational only.
func (d Direction) Actionable() bool {
	return d != DirectionAvoid && d != DirectionWait
}

// Confidence is an ordinal rule-strength tier.
type Confidence int

const (
	ConfidenceLow    Confidence = 1
	ConfidenceMedium Confidence = 2
	ConfidenceHigh   Confidence = 3
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "HIGH"
	case ConfidenceMedium:
		return "MEDIUM"
	case ConfidenceLow:
		return "LOW"
	default:
		return fmt.Sprintf("Confidence(%d)", int(c))
	}
}

// Valid reports whether c is one of the three tiers.
func (c Confidence) Valid() bool {
	return c >= ConfidenceLow && c <= ConfidenceHigh
}

// ParseConfidence accepts HIGH, MEDIUM or LOW in any case.
func ParseConfidence(s string) (Confidence, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return ConfidenceHigh, nil
	case "MEDIUM":
		return ConfidenceMedium, nil
	case "LOW":
		return ConfidenceLow, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidConfidence, s)
}

// Category is a watchlist bucket.
type Category string

const (
	CategoryPrimary   Category = "PRIMARY"
	CategorySecondary Category = "SECONDARY"
	CategoryRange     Category = "RANGE"
	CategoryMonitor   Category = "MONITOR"
	CategoryAvoid     Category = "AVOID"
)

// Categories is the fixed category enumeration order.
var Categories = []Category{CategoryPrimary, CategorySecondary, CategoryRange, CategoryMonitor, CategoryAvoid}

// Title is the display heading of the category.
func (c Category) Title() string {
	switch c {
	case CategoryPrimary:
		return "Primary Carry Trades"
	case CategorySecondary:
		return "Secondary / Counter-Trend Opportunities"
	case CategoryRange:
		return "Range Trading Candidates"
	case CategoryMonitor:
		return "Monitor - Neutral Regime"
	case CategoryAvoid:
		return "Avoid - High Risk"
	default:
		return string(c)
	}
}

// Rule identifies the decision-table row that classified a pair.
type Rule string

const (
	RuleCarryAligned         Rule = "carry_aligned"
	RuleNegativeCarryBearish Rule = "negative_carry_bearish"
	RuleModerateCarry        Rule = "moderate_carry"
	RuleSafeHavenReversal    Rule = "safe_haven_reversal"
	RuleSafeHaven            Rule = "safe_haven"
	RuleCarryUnwind          Rule = "carry_unwind"
	RuleNeutralMonitor       Rule = "neutral_monitor"
	RuleLowDifferential      Rule = "low_differential"
)

// WatchlistEntry is the classification of one pair under one rule.
type WatchlistEntry struct {
	Pair       CurrencyPair
	Diff       float64 // base rate - quote rate, percentage points
	AbsDiff    float64
	Trend      Trend
	Direction  Direction
	Rule       Rule
	Rationale  string
	Confidence Confidence
}

// Watchlist groups entries by category. Every category is always present.
type Watchlist struct {
	entries map[Category][]WatchlistEntry
}

// NewWatchlist returns a watchlist with every category present and empty.
func NewWatchlist() *Watchlist {
	w := &Watchlist{entries: make(map[Category][]WatchlistEntry, len(Categories))}
	for _, c := range Categories {
		w.entries[c] = []WatchlistEntry{}
	}
	return w
}

// Add appends e to category c unless the pair is already in it. It reports whether e was added.
func (w *Watchlist) Add(c Category, e WatchlistEntry) bool {
	for _, existing := range w.entries[c] {
		if existing.Pair == e.Pair {
			return false
		}
	}
	w.entries[c] = append(w.entries[c], e)
	return true
}

// Entries returns a copy of the entries of c in their current order.
func (w *Watchlist) Entries(c Category) []WatchlistEntry {
	out := make([]WatchlistEntry, len(w.entries[c]))
	copy(out, w.entries[c])
	return out
}

// Categories returns the category enumeration.
func (w *Watchlist) Categories() []Category {
	return Categories
}

// Has reports whether c is a category of the watchlist.
func (w *Watchlist) Has(c Category) bool {
	_, ok := w.entries[c]
	return ok
}

// Len is the total number of entries across categories.
func (w *Watchlist) Len() int {
	n := 0
	for _, es := range w.entries {
		n += len(es)
	}
	return n
}

// Set replaces the entries of c. Used by post-processing such as ranking.
func (w *Watchlist) Set(c Category, entries []WatchlistEntry) {
	w.entries[c] = entries
}
