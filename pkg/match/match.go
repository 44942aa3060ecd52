// Package match resolves normalized user queries to club or city entities
// using a ranked-rule policy: exact alias hit, then hard-coded overrides for
// known-ambiguous short forms, then substring matching with a deterministic
// tie-break. A failed match is an absent result, never an error.
package match

import (
	"strings"

	"github.com/coolbeans/coachbot/pkg/entity"
)

// Rule names the matching rule that produced a Match.
type Rule string

const (
	// RuleExact means the whole query equalled an indexed alias.
	RuleExact Rule = "exact"
	// RuleOverride means a hard-coded override pinned the query to an entity.
	RuleOverride Rule = "override"
	// RuleSubstring means generic partial matching found the entity.
	RuleSubstring Rule = "substring"
)

// Match is a successful resolution of a query to one entity.
type Match struct {
	Alias entity.Alias // the indexed alias that matched
	Rule  Rule
}

// Kind reports whether the matched entity is a club or a city.
func (match *Match) Kind() entity.Kind {
	return match.Alias.Kind
}

// Label returns the canonical name of the matched entity.
func (match *Match) Label() string {
	return match.Alias.Label()
}

// Override pins a query fragment to one entity, bypassing generic substring
// matching. Fragment and Target are compared in normalized form. The target
// entity is found by scanning the index for the first alias containing
// Target, so overrides survive label changes in the reference data.
type Override struct {
	Fragment string // fragment to look for in the normalized query
	Target   string // fragment identifying the pinned entity's alias
}

// DefaultOverrides resolves short forms that generic substring matching
// would get wrong. "pauli" must hit FC St. Pauli even though other club
// labels contain similar fragments, and "gladbach" is the common short form
// of a club whose canonical label does not start with it.
var DefaultOverrides = []Override{
	{Fragment: "pauli", Target: "st. pauli"},
	{Fragment: "gladbach", Target: "monchengladbach"},
}

// minimumAliasLength guards substring matching against trivially short
// aliases ("s04"-style abbreviations are fine, single letters are not).
const minimumAliasLength = 3

// Matcher resolves normalized queries against a read-only alias index.
type Matcher struct {
	index     *entity.AliasIndex
	overrides []Override
}

// NewMatcher creates a matcher over the given index with the default
// override table.
func NewMatcher(index *entity.AliasIndex) *Matcher {
	return NewMatcherWithOverrides(index, DefaultOverrides)
}

// NewMatcherWithOverrides creates a matcher with a caller-supplied override
// table, evaluated in slice order before generic matching.
func NewMatcherWithOverrides(index *entity.AliasIndex, overrides []Override) *Matcher {
	return &Matcher{index: index, overrides: overrides}
}

// Match resolves a normalized query to at most one entity.
//
// Policy, in precedence order:
//  1. Exact alias match.
//  2. Override table: first override whose fragment occurs in the query.
//  3. Substring: first alias (clubs before cities, longest alias first,
//     lexicographic on ties) that occurs in the query or contains it.
//
// Returns nil when nothing matches. Never returns an error: an unrecognized
// query is a normal outcome the caller turns into a user-facing reply.
func (matcher *Matcher) Match(normalizedQuery string) *Match {
	if normalizedQuery == "" {
		return nil
	}

	if alias, found := matcher.index.Exact(normalizedQuery); found {
		return &Match{Alias: alias, Rule: RuleExact}
	}

	for _, override := range matcher.overrides {
		if !strings.Contains(normalizedQuery, override.Fragment) {
			continue
		}
		if alias, found := matcher.findAliasContaining(override.Target); found {
			return &Match{Alias: alias, Rule: RuleOverride}
		}
	}

	for _, alias := range matcher.index.Aliases() {
		if len(alias.Text) < minimumAliasLength {
			continue
		}
		if strings.Contains(normalizedQuery, alias.Text) || strings.Contains(alias.Text, normalizedQuery) {
			return &Match{Alias: alias, Rule: RuleSubstring}
		}
	}

	return nil
}

// findAliasContaining returns the first indexed alias, in scan order, whose
// text contains the given fragment.
func (matcher *Matcher) findAliasContaining(fragment string) (entity.Alias, bool) {
	for _, alias := range matcher.index.Aliases() {
		if strings.Contains(alias.Text, fragment) {
			return alias, true
		}
	}
	return entity.Alias{}, false
}
