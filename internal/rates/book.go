package rates

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"CarrySentinel/internal/model"
)

// Book holds the most recently submitted rate table, persisted to a JSON file
// so the scheduled analysis survives restarts.
type Book struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewBook loads the state file, seeding it with initial when the file holds no rates.
func NewBook(filePath string, initial model.RateMap) (*Book, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	if len(state.Rates) == 0 && len(initial) > 0 {
		state.Rates = copyRates(initial)
	}
	b := &Book{state: state, filePath: filePath}
	if err := b.save(state); err != nil {
		return nil, err
	}
	return b, nil
}

// Rates returns a copy of the current rate map.
func (b *Book) Rates() model.RateMap {
	b.mu.Lock()
	defer b.mu.Unlock()
	return copyRates(b.state.Rates)
}

// UpdatedAt is when the rates were last replaced.
func (b *Book) UpdatedAt() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.UpdatedAt
}

// Replace persists a new rate table and then swaps it in.
// On a failed save the book keeps its previous rates.
func (b *Book) Replace(rates model.RateMap) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := &State{Rates: copyRates(rates)}
	if err := b.save(next); err != nil {
		log.Error().Err(err).Msg("failed to save rate book")
		return err
	}
	b.state = next
	return nil
}

// ReplaceText parses a pasted table and replaces the book with it.
func (b *Book) ReplaceText(text string) (model.RateMap, error) {
	rates, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if err := b.Replace(rates); err != nil {
		return nil, err
	}
	return rates, nil
}

func (b *Book) save(state *State) error {
	if b.filePath == "" {
		state.UpdatedAt = time.Now()
		return nil
	}
	return SaveState(b.filePath, state)
}

func copyRates(in model.RateMap) model.RateMap {
	out := make(model.RateMap, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
