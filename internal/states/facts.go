package states

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/hyperengineering/statefacts/internal/store"
	"github.com/hyperengineering/statefacts/internal/types"
)

// RandomFact returns one of the state's facts, chosen by the service Picker.
func (s *Service) RandomFact(ctx context.Context, code string) (*types.FunFactResponse, error) {
	doc, err := s.overlays.FindOne(ctx, code)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, storageError("random_fact", code, err)
	}
	if doc == nil || len(doc.FunFacts) == 0 {
		return nil, notFoundError(fmt.Sprintf("No Fun Facts found for %s", s.stateName(code)))
	}

	i := s.picker.Intn(len(doc.FunFacts))
	return &types.FunFactResponse{FunFact: doc.FunFacts[i]}, nil
}

// AppendFacts appends the facts in raw, a JSON array, to the state's overlay.
// JSON null entries are stored as empty strings.
func (s *Service) AppendFacts(ctx context.Context, code string, raw json.RawMessage) (*types.FactOverlay, error) {
	if !gjson.ValidBytes(raw) {
		return nil, validationError("State fun facts value must be an array")
	}
	value := gjson.ParseBytes(raw)
	if !value.IsArray() {
		return nil, validationError("State fun facts value must be an array")
	}

	elems := value.Array()
	facts := make([]string, 0, len(elems))
	for _, el := range elems {
		switch el.Type {
		case gjson.String:
			facts = append(facts, el.Str)
		case gjson.Null:
			facts = append(facts, "")
		default:
			return nil, validationError("State fun facts value must be an array of strings")
		}
	}

	doc, err := s.overlays.UpsertAppend(ctx, code, facts)
	if err != nil {
		return nil, storageError("append_facts", code, err)
	}
	return doc, nil
}

// ReplaceFact overwrites the fact at a 1-based index.
func (s *Service) ReplaceFact(ctx context.Context, code string, req types.ReplaceFactRequest) (*types.FactOverlay, error) {
	if req.Index == nil || *req.Index == 0 {
		return nil, validationError("State fun fact index value required")
	}
	if req.FunFact == nil || *req.FunFact == "" {
		return nil, validationError("State fun fact value required")
	}

	doc, err := s.overlays.ReplaceAt(ctx, code, *req.Index, *req.FunFact)
	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, store.ErrNoFacts):
		return nil, indexError(fmt.Sprintf("No Fun Facts found for %s", s.stateName(code)))
	case errors.Is(err, store.ErrIndexOutOfRange):
		return nil, indexError(fmt.Sprintf("No Fun Fact found at that index for %s", s.stateName(code)))
	default:
		return nil, storageError("replace_fact", code, err)
	}
}

// DeleteFact requires an index but removes every empty fact from the
// state's overlay rather than the fact at that index.
func (s *Service) DeleteFact(ctx context.Context, code string, req types.DeleteFactRequest) (*types.MutationResult, error) {
	if req.Index == nil || *req.Index == 0 {
		return nil, validationError("State fun fact index value required")
	}
	return s.PruneFacts(ctx, code)
}

// PruneFacts removes every empty fact from the state's overlay.
func (s *Service) PruneFacts(ctx context.Context, code string) (*types.MutationResult, error) {
	result, err := s.overlays.RemoveNullish(ctx, code)
	if err != nil {
		return nil, storageError("prune_facts", code, err)
	}
	return result, nil
}

// ClearFacts removes the state's overlay document entirely.
func (s *Service) ClearFacts(ctx context.Context, code string) error {
	err := s.overlays.Store().Delete(ctx, code)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return notFoundError(fmt.Sprintf("No Fun Facts found for %s", s.stateName(code)))
	default:
		return storageError("clear_facts", code, err)
	}
}
