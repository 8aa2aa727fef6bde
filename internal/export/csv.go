package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"CarrySentinel/internal/model"
)

// Header is the CSV column order.
var Header = []string{
	"Pair", "Signal", "Category", "Rate Diff", "Price Trend",
	"Confidence", "Rationale", "Entry", "Stop", "Target",
}

// WriteCSV writes one row per signal, in the given order.
func WriteCSV(w io.Writer, signals []model.TradingSignal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range signals {
		row := []string{
			s.Pair.String(),
			string(s.Direction),
			string(s.Category),
			s.RateDiff,
			string(s.Trend),
			s.Confidence.String(),
			s.Rationale,
			s.Entry,
			s.Stop,
			s.Target,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", s.Pair, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
