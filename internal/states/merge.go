package states

import (
	"context"
	"errors"

	"github.com/hyperengineering/statefacts/internal/store"
	"github.com/hyperengineering/statefacts/internal/types"
)

// Contiguity selects which states a merged list includes.
type Contiguity int

const (
	AllStates Contiguity = iota
	ContiguousOnly
	NonContiguousOnly
)

// nonContiguous lists the states outside the contiguous 48.
var nonContiguous = map[string]bool{
	"AK": true,
	"HI": true,
}

// ParseContiguity maps the contig query value: "true" keeps the contiguous
// states, "false" keeps only AK and HI, anything else keeps all.
func ParseContiguity(v string) Contiguity {
	switch v {
	case "true":
		return ContiguousOnly
	case "false":
		return NonContiguousOnly
	default:
		return AllStates
	}
}

func (c Contiguity) keep(code string) bool {
	switch c {
	case ContiguousOnly:
		return !nonContiguous[code]
	case NonContiguousOnly:
		return nonContiguous[code]
	default:
		return true
	}
}

// String returns the query value that selects c.
func (c Contiguity) String() string {
	switch c {
	case ContiguousOnly:
		return "true"
	case NonContiguousOnly:
		return "false"
	default:
		return "all"
	}
}

// Merge filters refs by contiguity, then copies the facts of each matching
// overlay onto its state. Overlays with no facts leave the state without a
// funfacts field. When two overlays share a code, the later one wins.
func Merge(refs []types.StateReference, overlays []types.FactOverlay, c Contiguity) []types.MergedState {
	merged := make([]types.MergedState, 0, len(refs))
	pos := make(map[string]int, len(refs))
	for _, ref := range refs {
		if !c.keep(ref.Code) {
			continue
		}
		pos[ref.Code] = len(merged)
		merged = append(merged, types.MergedState{StateReference: ref})
	}

	for _, doc := range overlays {
		i, ok := pos[doc.StateCode]
		if !ok || len(doc.FunFacts) == 0 {
			continue
		}
		facts := make([]string, len(doc.FunFacts))
		copy(facts, doc.FunFacts)
		merged[i].FunFacts = facts
	}

	return merged
}

// MergedList returns every state passing the contiguity filter, in
// reference order, with overlay facts attached.
func (s *Service) MergedList(ctx context.Context, c Contiguity) ([]types.MergedState, error) {
	overlays, err := s.overlays.FindAll(ctx)
	if err != nil {
		return nil, storageError("merged_list", "", err)
	}
	return Merge(s.refs.All(), overlays, c), nil
}

// MergedOne returns a single state with its overlay facts attached.
func (s *Service) MergedOne(ctx context.Context, code string) (*types.MergedState, error) {
	ref, ok := s.refs.Lookup(code)
	if !ok {
		return nil, notFoundError("Invalid state abbreviation parameter")
	}

	var overlays []types.FactOverlay
	doc, err := s.overlays.FindOne(ctx, code)
	switch {
	case err == nil:
		overlays = append(overlays, *doc)
	case errors.Is(err, store.ErrNotFound):
	default:
		return nil, storageError("merged_one", code, err)
	}

	merged := Merge([]types.StateReference{ref}, overlays, AllStates)
	return &merged[0], nil
}
