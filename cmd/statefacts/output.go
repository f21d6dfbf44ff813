package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hyperengineering/statefacts/internal/reference"
	"github.com/hyperengineering/statefacts/internal/states"
)

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// commandError turns a fact operation failure into the message a client
// would see over HTTP.
func commandError(err error) error {
	return errors.New(states.Message(err, err.Error()))
}

// normalizeCode validates a state code argument.
func normalizeCode(refs *reference.Store, raw string) (string, error) {
	code, err := refs.Normalize(raw)
	if err != nil {
		return "", fmt.Errorf("invalid state code %q", raw)
	}
	return code, nil
}
