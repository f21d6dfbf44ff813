// Package states joins the immutable state reference dataset with the
// mutable fun-fact overlay and implements the fact operations exposed over
// HTTP and the CLI.
package states

import (
	"context"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hyperengineering/statefacts/internal/reference"
	"github.com/hyperengineering/statefacts/internal/store"
)

// Service owns no data of its own. It reads the reference store and reads or
// writes the overlay store on every call.
type Service struct {
	refs     *reference.Store
	overlays *store.Overlays
	picker   Picker
	printer  *message.Printer
}

// NewService creates a Service. A nil picker selects facts uniformly at
// random from an auto-seeded source.
func NewService(refs *reference.Store, overlays *store.Overlays, picker Picker) *Service {
	if picker == nil {
		picker = randomPicker{}
	}
	return &Service{
		refs:     refs,
		overlays: overlays,
		picker:   picker,
		printer:  message.NewPrinter(language.AmericanEnglish),
	}
}

// References returns the reference store backing the service.
func (s *Service) References() *reference.Store {
	return s.refs
}

// Stats reports the number of reference states and stored overlays.
func (s *Service) Stats(ctx context.Context) (states int, overlays int64, err error) {
	n, err := s.overlays.Store().Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count overlays: %w", err)
	}
	return s.refs.Len(), n, nil
}

// stateName returns the display name used in client-facing messages.
func (s *Service) stateName(code string) string {
	return s.refs.Name(code)
}
