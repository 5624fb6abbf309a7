package words

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aaronzipp/undercover/internal/game"
	"github.com/aaronzipp/undercover/internal/models"
)

//go:embed pairs.json
var defaultPairs []byte

// ErrEmptyBank is returned when a word list holds no usable pair
var ErrEmptyBank = errors.New("word bank has no pairs")

// Bank hands out random word pairs. It is safe for concurrent use.
type Bank struct {
	mu    sync.Mutex
	pairs []models.WordPair
	rng   game.Random
}

// New builds a bank from pairs, dropping entries with a missing word or two
// identical words
func New(pairs []models.WordPair, rng game.Random) (*Bank, error) {
	valid := make([]models.WordPair, 0, len(pairs))
	for _, p := range pairs {
		p.Civilian = strings.TrimSpace(p.Civilian)
		p.Undercover = strings.TrimSpace(p.Undercover)
		if p.Civilian == "" || p.Undercover == "" || strings.EqualFold(p.Civilian, p.Undercover) {
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return nil, ErrEmptyBank
	}
	if rng == nil {
		rng = game.DefaultRandom()
	}
	return &Bank{pairs: valid, rng: rng}, nil
}

// Default returns the bank compiled into the binary
func Default(rng game.Random) (*Bank, error) {
	return parse(defaultPairs, "embedded pairs", rng)
}

// Load reads a JSON array of {"civilian", "undercover"} objects from path
func Load(path string, rng game.Random) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parse(data, path, rng)
}

func parse(data []byte, source string, rng game.Random) (*Bank, error) {
	var pairs []models.WordPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	bank, err := New(pairs, rng)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", source, err)
	}
	return bank, nil
}

// NextWordPair returns a uniformly chosen pair
func (b *Bank) NextWordPair() (string, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.pairs[b.rng.IntN(len(b.pairs))]
	return p.Civilian, p.Undercover
}

// Len returns the number of pairs in the bank
func (b *Bank) Len() int {
	return len(b.pairs)
}
