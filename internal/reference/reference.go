// Package reference holds the immutable US state dataset. The dataset is
// loaded once at startup and shared read-only by every request.
package reference

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hyperengineering/statefacts/internal/types"
)

//go:embed data/states.json
var embeddedStates []byte

var (
	// ErrInvalidDataset indicates the reference source failed validation.
	ErrInvalidDataset = errors.New("invalid reference dataset")
	// ErrInvalidCode indicates a string is not a known state code.
	ErrInvalidCode = errors.New("invalid state code")
)

// codePattern matches a normalized two-letter state code.
var codePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// Store is a read-only lookup of state reference data by code.
type Store struct {
	states []types.StateReference
	index  map[string]int
}

// Load returns a Store built from the embedded dataset.
func Load() (*Store, error) {
	return Parse(embeddedStates)
}

// LoadFile returns a Store built from a JSON dataset on disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of states and validates it.
// Load order is preserved by All.
func Parse(data []byte) (*Store, error) {
	var states []types.StateReference
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: no states", ErrInvalidDataset)
	}

	index := make(map[string]int, len(states))
	for i, s := range states {
		if !codePattern.MatchString(s.Code) {
			return nil, fmt.Errorf("%w: invalid code %q at position %d", ErrInvalidDataset, s.Code, i)
		}
		if _, dup := index[s.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate code %q", ErrInvalidDataset, s.Code)
		}
		index[s.Code] = i
	}

	return &Store{states: states, index: index}, nil
}

// Lookup returns the state for an uppercase code.
func (s *Store) Lookup(code string) (types.StateReference, bool) {
	i, ok := s.index[code]
	if !ok {
		return types.StateReference{}, false
	}
	return s.states[i], true
}

// All returns every state in load order. The returned slice is a copy.
func (s *Store) All() []types.StateReference {
	out := make([]types.StateReference, len(s.states))
	copy(out, s.states)
	return out
}

// Codes returns every state code in load order.
func (s *Store) Codes() []string {
	codes := make([]string, len(s.states))
	for i, st := range s.states {
		codes[i] = st.Code
	}
	return codes
}

// Len returns the number of states.
func (s *Store) Len() int {
	return len(s.states)
}

// Name returns the human-readable name for a code, or the code itself
// when it is unknown.
func (s *Store) Name(code string) string {
	if st, ok := s.Lookup(code); ok {
		return st.Name
	}
	return code
}

// Normalize upper-cases a user supplied code and checks it against the
// dataset. Input is case-insensitive.
func (s *Store) Normalize(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if _, ok := s.index[code]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, raw)
	}
	return code, nil
}
