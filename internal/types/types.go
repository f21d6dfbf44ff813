package types

import (
	"encoding/json"
	"time"
)

// StateReference holds the static attributes of a single US state.
// Values are loaded once at startup and never mutated.
type StateReference struct {
	Name            string `json:"state"`
	Slug            string `json:"slug,omitempty"`
	Code            string `json:"code"`
	Nickname        string `json:"nickname"`
	Capital         string `json:"capital_city"`
	Population      int64  `json:"population"`
	PopulationRank  int    `json:"population_rank,omitempty"`
	AdmissionDate   string `json:"admission_date"`
	AdmissionNumber int    `json:"admission_number,omitempty"`
}

// FactOverlay is the mutable fun-fact document for one state.
type FactOverlay struct {
	ID        string    `json:"_id"`
	StateCode string    `json:"stateCode"`
	FunFacts  []string  `json:"funfacts"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MergedState is a StateReference joined with its overlay facts.
// FunFacts is omitted from JSON when the state has no facts.
type MergedState struct {
	StateReference
	FunFacts []string `json:"funfacts,omitempty"`
}

// MutationResult summarizes a value-based update against one document.
type MutationResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// --- Request/response wire types ---

// AppendFactsRequest is the body of an append. FunFacts stays raw so element
// types can be checked before anything is stored.
type AppendFactsRequest struct {
	FunFacts json.RawMessage `json:"funfacts"`
}

// FunFactResponse is the body returned by the random fact endpoint.
type FunFactResponse struct {
	FunFact string `json:"funfact"`
}

// ReplaceFactRequest is the PATCH body. Pointers distinguish absent fields.
type ReplaceFactRequest struct {
	Index   *int    `json:"index"`
	FunFact *string `json:"funfact"`
}

// DeleteFactRequest is the DELETE body.
type DeleteFactRequest struct {
	Index *int `json:"index"`
}

// CapitalResponse projects the capital city of a state.
type CapitalResponse struct {
	State   string `json:"state"`
	Capital string `json:"capital"`
}

// NicknameResponse projects the nickname of a state.
type NicknameResponse struct {
	State    string `json:"state"`
	Nickname string `json:"nickname"`
}

// PopulationResponse projects the population of a state, formatted with
// thousands separators.
type PopulationResponse struct {
	State      string `json:"state"`
	Population string `json:"population"`
}

// AdmissionResponse projects the admission date of a state.
type AdmissionResponse struct {
	State    string `json:"state"`
	Admitted string `json:"admitted"`
}

// ErrorResponse is the single error body shape used by every endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	StateCount   int    `json:"state_count"`
	OverlayCount int64  `json:"overlay_count"`
}
