package entity

import (
	"sort"

	"github.com/coolbeans/coachbot/pkg/normalize"
)

// Alias is one normalized alias string together with the entity it names.
// Exactly one of Club or City is non-nil, matching Kind.
type Alias struct {
	Text string // normalized alias text
	Kind Kind
	Club *Club
	City *City
}

// Label returns the canonical name of the aliased entity.
func (alias Alias) Label() string {
	if alias.Kind == KindClub {
		return alias.Club.Name
	}
	return alias.City.Name
}

// AliasIndex maps normalized alias strings to entities. It is built once per
// session from a Catalog and is read-only afterwards. Construction order is
// deterministic: clubs before cities, each block in canonical name order, so
// alias collisions always resolve the same way across runs.
type AliasIndex struct {
	exact   map[string]Alias
	ordered []Alias
}

// BuildAliasIndex constructs the session alias index from reference data.
// Every canonical name and alternate label is normalized before indexing.
// When two entities normalize to the same alias, the first one in
// construction order wins and later entries are dropped.
func BuildAliasIndex(catalog *Catalog) *AliasIndex {
	index := &AliasIndex{exact: make(map[string]Alias)}

	clubs := append([]*Club(nil), catalog.Clubs...)
	sort.Slice(clubs, func(i, j int) bool { return clubs[i].Name < clubs[j].Name })
	for _, club := range clubs {
		for _, label := range append([]string{club.Name}, club.Aliases...) {
			index.add(Alias{Text: normalize.Normalize(label), Kind: KindClub, Club: club})
		}
	}

	cities := append([]*City(nil), catalog.Cities...)
	sort.Slice(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })
	for _, city := range cities {
		for _, label := range append([]string{city.Name}, city.Aliases...) {
			index.add(Alias{Text: normalize.Normalize(label), Kind: KindCity, City: city})
		}
	}

	// Scan order for partial matching: clubs before cities (the club block
	// was added first), longer aliases before shorter ones within a block,
	// lexicographic order as the final tie-break.
	sort.SliceStable(index.ordered, func(i, j int) bool {
		a, b := index.ordered[i], index.ordered[j]
		if a.Kind != b.Kind {
			return a.Kind == KindClub
		}
		if len(a.Text) != len(b.Text) {
			return len(a.Text) > len(b.Text)
		}
		return a.Text < b.Text
	})

	return index
}

func (index *AliasIndex) add(alias Alias) {
	if alias.Text == "" {
		return
	}
	if _, exists := index.exact[alias.Text]; exists {
		return
	}
	index.exact[alias.Text] = alias
	index.ordered = append(index.ordered, alias)
}

// Exact looks up an already-normalized query string for an exact alias hit.
func (index *AliasIndex) Exact(normalized string) (Alias, bool) {
	alias, found := index.exact[normalized]
	return alias, found
}

// Aliases returns every indexed alias in deterministic scan order:
// clubs first, then cities, longest alias first within each block.
// The returned slice is shared; callers must not modify it.
func (index *AliasIndex) Aliases() []Alias {
	return index.ordered
}

// Len reports the number of distinct normalized aliases in the index.
func (index *AliasIndex) Len() int {
	return len(index.exact)
}
