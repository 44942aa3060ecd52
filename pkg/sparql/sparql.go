// Package sparql builds SELECT queries for a SPARQL endpoint and decodes
// application/sparql-results+json responses. The builder covers the small
// SPARQL surface this tool needs: triple patterns, OPTIONAL blocks, FILTER
// and FILTER NOT EXISTS clauses, the Wikibase label service, and LIMIT.
package sparql

import (
	"fmt"
	"strings"
)

// TriplePattern represents a triple pattern in a WHERE clause.
type TriplePattern struct {
	Subject   string // Can be variable (?var), URI (<uri>), or prefixed (wd:Q64)
	Predicate string
	Object    string
}

func (pattern TriplePattern) render() string {
	return fmt.Sprintf("%s %s %s .", pattern.Subject, pattern.Predicate, pattern.Object)
}

// Filter represents a FILTER clause holding a raw filter expression.
type Filter struct {
	Expression string // e.g., `LANG(?clubLabel) = "en"`
}

// optionalBlock is an OPTIONAL group of patterns with their own filters.
type optionalBlock struct {
	patterns []TriplePattern
	filters  []Filter
}

// SelectQuery accumulates the parts of a SELECT query. Build one with
// NewSelect, chain the With* methods, and render it with String.
type SelectQuery struct {
	variables  []string
	distinct   bool
	where      []TriplePattern
	optionals  []optionalBlock
	filters    []Filter
	notExists  [][]TriplePattern
	service    string
	serviceArg string
	limit      int
}

// NewSelect starts a SELECT query projecting the given variables.
func NewSelect(variables ...string) *SelectQuery {
	return &SelectQuery{variables: variables}
}

// Distinct adds the DISTINCT modifier.
func (query *SelectQuery) Distinct() *SelectQuery {
	query.distinct = true
	return query
}

// Where appends a triple pattern to the WHERE clause.
func (query *SelectQuery) Where(subject, predicate, object string) *SelectQuery {
	query.where = append(query.where, TriplePattern{Subject: subject, Predicate: predicate, Object: object})
	return query
}

// Optional appends an OPTIONAL block containing the given patterns and filters.
func (query *SelectQuery) Optional(patterns []TriplePattern, filters ...Filter) *SelectQuery {
	query.optionals = append(query.optionals, optionalBlock{patterns: patterns, filters: filters})
	return query
}

// Filter appends a FILTER clause with a raw expression.
func (query *SelectQuery) Filter(expression string) *SelectQuery {
	query.filters = append(query.filters, Filter{Expression: expression})
	return query
}

// LangFilter builds a FILTER constraining the language of a label variable.
// The language tag is escaped for embedding in the quoted literal.
func LangFilter(variable, language string) Filter {
	return Filter{Expression: fmt.Sprintf(`LANG(%s) = "%s"`, variable, EscapeLiteral(language))}
}

// FilterLang appends a FILTER constraining the language of a label variable.
func (query *SelectQuery) FilterLang(variable, language string) *SelectQuery {
	query.filters = append(query.filters, LangFilter(variable, language))
	return query
}

// FilterNotExists appends a FILTER NOT EXISTS block with the given patterns.
func (query *SelectQuery) FilterNotExists(patterns ...TriplePattern) *SelectQuery {
	query.notExists = append(query.notExists, patterns)
	return query
}

// Service sets a SERVICE clause (used for the Wikibase label service).
func (query *SelectQuery) Service(name, body string) *SelectQuery {
	query.service = name
	query.serviceArg = body
	return query
}

// Limit sets the LIMIT modifier. Zero means no limit.
func (query *SelectQuery) Limit(limit int) *SelectQuery {
	query.limit = limit
	return query
}

// String renders the query as SPARQL text.
func (query *SelectQuery) String() string {
	var builder strings.Builder

	builder.WriteString("SELECT ")
	if query.distinct {
		builder.WriteString("DISTINCT ")
	}
	builder.WriteString(strings.Join(query.variables, " "))
	builder.WriteString(" WHERE {\n")

	for _, pattern := range query.where {
		builder.WriteString("  " + pattern.render() + "\n")
	}
	for _, block := range query.optionals {
		builder.WriteString("  OPTIONAL {\n")
		for _, pattern := range block.patterns {
			builder.WriteString("    " + pattern.render() + "\n")
		}
		for _, filter := range block.filters {
			builder.WriteString("    FILTER(" + filter.Expression + ")\n")
		}
		builder.WriteString("  }\n")
	}
	for _, filter := range query.filters {
		builder.WriteString("  FILTER(" + filter.Expression + ")\n")
	}
	for _, patterns := range query.notExists {
		builder.WriteString("  FILTER NOT EXISTS {\n")
		for _, pattern := range patterns {
			builder.WriteString("    " + pattern.render() + "\n")
		}
		builder.WriteString("  }\n")
	}
	if query.service != "" {
		builder.WriteString("  SERVICE " + query.service + " { " + query.serviceArg + " }\n")
	}

	builder.WriteString("}")
	if query.limit > 0 {
		builder.WriteString(fmt.Sprintf(" LIMIT %d", query.limit))
	}
	return builder.String()
}

// IsVariable checks if a string is a SPARQL variable.
func IsVariable(s string) bool {
	return len(s) > 0 && s[0] == '?'
}
