package sparql

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Value is one bound value in a result row.
type Value struct {
	Type     string `json:"type"` // "uri", "literal", or "bnode"
	Value    string `json:"value"`
	Language string `json:"xml:lang,omitempty"`
}

// Binding maps variable names (without the leading ?) to bound values.
type Binding map[string]Value

// Get returns the string value bound to a variable, and whether the
// variable was bound at all in this row (OPTIONAL patterns may leave it out).
// The variable may be given with or without its leading ?.
func (binding Binding) Get(variable string) (string, bool) {
	if IsVariable(variable) {
		variable = variable[1:]
	}
	value, bound := binding[variable]
	if !bound {
		return "", false
	}
	return value.Value, true
}

// EntityID extracts the trailing entity identifier from a bound URI value,
// e.g. "http://www.wikidata.org/entity/Q64" yields "Q64". Literal values are
// returned unchanged.
func (binding Binding) EntityID(variable string) (string, bool) {
	raw, bound := binding.Get(variable)
	if !bound {
		return "", false
	}
	if slash := strings.LastIndex(raw, "/"); slash >= 0 {
		return raw[slash+1:], true
	}
	return raw, true
}

// Results is a decoded application/sparql-results+json response.
type Results struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

// Rows returns the result rows. A query with no solutions yields an empty
// (possibly nil) slice, not an error.
func (results *Results) Rows() []Binding {
	return results.Results.Bindings
}

// DecodeResults parses a SPARQL JSON results document.
func DecodeResults(reader io.Reader) (*Results, error) {
	var results Results
	if err := json.NewDecoder(reader).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode SPARQL results: %w", err)
	}
	return &results, nil
}
