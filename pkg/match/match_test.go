package match

import (
	"testing"

	"github.com/coolbeans/coachbot/pkg/entity"
	"github.com/coolbeans/coachbot/pkg/normalize"
)

func testIndex() *entity.AliasIndex {
	catalog := &entity.Catalog{
		Clubs: []*entity.Club{
			{ID: "Q15789", Name: "FC Bayern München", CityID: "Q1726", City: "Munich", Aliases: []string{"Bayern Munich", "Bayern", "FCB"}},
			{ID: "Q185335", Name: "Bayer 04 Leverkusen", CityID: "Q2798", City: "Leverkusen", Aliases: []string{"Bayer Leverkusen", "Bayer"}},
			{ID: "Q7775", Name: "FC St. Pauli", CityID: "Q1055", City: "Hamburg", Aliases: []string{"St. Pauli"}},
			{ID: "Q154732", Name: "Hamburger SV", CityID: "Q1055", City: "Hamburg", Aliases: []string{"HSV"}},
			{ID: "Q162465", Name: "1. FC Union Berlin", CityID: "Q64", City: "Berlin", Aliases: []string{"Union Berlin"}},
			{ID: "Q1143", Name: "Hertha BSC", CityID: "Q64", City: "Berlin", Aliases: []string{"Hertha Berlin", "Hertha"}},
			{ID: "Q18746", Name: "Borussia Mönchengladbach", CityID: "Q2742", City: "Mönchengladbach", Aliases: []string{"Borussia MG"}},
			{ID: "Q2036", Name: "Eintracht Frankfurt", CityID: "Q1794", City: "Frankfurt", Aliases: []string{"SGE"}},
		},
		Cities: []*entity.City{
			{ID: "Q64", Name: "Berlin"},
			{ID: "Q1055", Name: "Hamburg"},
			{ID: "Q1726", Name: "Munich", Aliases: []string{"München"}},
			{ID: "Q2798", Name: "Leverkusen"},
			{ID: "Q2742", Name: "Mönchengladbach"},
			{ID: "Q1794", Name: "Frankfurt", Aliases: []string{"Frankfurt am Main"}},
		},
	}
	return entity.BuildAliasIndex(catalog)
}

func TestMatchExactAliasRoundTrip(t *testing.T) {
	index := testIndex()
	matcher := NewMatcher(index)

	// Every indexed alias must resolve back to its own entity.
	for _, alias := range index.Aliases() {
		result := matcher.Match(alias.Text)
		if result == nil {
			t.Fatalf("alias %q did not match anything", alias.Text)
		}
		if result.Label() != alias.Label() {
			t.Errorf("alias %q: got %q, want %q (rule %s)", alias.Text, result.Label(), alias.Label(), result.Rule)
		}
	}
}

func TestMatchFullQuestionContainsAlias(t *testing.T) {
	matcher := NewMatcher(testIndex())

	tests := []struct {
		question string
		want     string
		kind     entity.Kind
	}{
		{"Who is Bayerns coach?", "FC Bayern München", entity.KindClub},
		{"Who is Frankfurts manager?", "Frankfurt", entity.KindCity},
		{"Who is coaching Berlin?", "Berlin", entity.KindCity},
		{"Tell me about Leverkusen", "Leverkusen", entity.KindCity},
		{"who coaches the HSV", "Hamburger SV", entity.KindClub},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			result := matcher.Match(normalize.Normalize(tt.question))
			if result == nil {
				t.Fatalf("no match for %q", tt.question)
			}
			if result.Label() != tt.want {
				t.Errorf("got %q (rule %s), want %q", result.Label(), result.Rule, tt.want)
			}
			if result.Kind() != tt.kind {
				t.Errorf("kind: got %s, want %s", result.Kind(), tt.kind)
			}
		})
	}
}

func TestMatchOverridePinsPauli(t *testing.T) {
	matcher := NewMatcher(testIndex())

	result := matcher.Match(normalize.Normalize("Who is it for Pauli?"))
	if result == nil {
		t.Fatal("no match for pauli query")
	}
	if result.Rule != RuleOverride {
		t.Errorf("rule: got %s, want %s", result.Rule, RuleOverride)
	}
	if result.Label() != "FC St. Pauli" {
		t.Errorf("got %q, want FC St. Pauli", result.Label())
	}
}

func TestMatchOverrideBeatsSubstring(t *testing.T) {
	// "gladbach" is not a prefix of any canonical label; the override must
	// still resolve it, and must win even though generic matching would
	// also find the club via the contained-fragment rule.
	matcher := NewMatcher(testIndex())

	result := matcher.Match("who is coaching gladbach")
	if result == nil {
		t.Fatal("no match for gladbach query")
	}
	if result.Rule != RuleOverride {
		t.Errorf("rule: got %s, want %s", result.Rule, RuleOverride)
	}
	if result.Label() != "Borussia Mönchengladbach" {
		t.Errorf("got %q, want Borussia Mönchengladbach", result.Label())
	}
}

func TestMatchLongestAliasWins(t *testing.T) {
	// "bayerns" contains both "bayern" (FC Bayern) and "bayer" (Leverkusen);
	// the longer alias must win.
	matcher := NewMatcher(testIndex())

	result := matcher.Match("who is bayerns coach")
	if result == nil {
		t.Fatal("no match")
	}
	if result.Label() != "FC Bayern München" {
		t.Errorf("got %q, want FC Bayern München", result.Label())
	}
}

func TestMatchFragmentOfLongerAlias(t *testing.T) {
	// A bare fragment query may be contained in a longer alias.
	matcher := NewMatcher(testIndex())

	result := matcher.Match("eintracht")
	if result == nil {
		t.Fatal("no match for fragment query")
	}
	if result.Label() != "Eintracht Frankfurt" {
		t.Errorf("got %q, want Eintracht Frankfurt", result.Label())
	}
}

func TestMatchUnknownQueryReturnsAbsent(t *testing.T) {
	matcher := NewMatcher(testIndex())

	for _, query := range []string{"", "real madrid", "who won the world cup"} {
		if result := matcher.Match(query); result != nil {
			t.Errorf("query %q: got %q, want absent", query, result.Label())
		}
	}
}

func TestMatchDeterministicAcrossRuns(t *testing.T) {
	// Berlin hosts two clubs; repeated matching must always land on the
	// same entity.
	first := NewMatcher(testIndex()).Match("who is coaching berlin")
	if first == nil {
		t.Fatal("no match for berlin query")
	}
	for i := 0; i < 20; i++ {
		again := NewMatcher(testIndex()).Match("who is coaching berlin")
		if again == nil || again.Label() != first.Label() || again.Rule != first.Rule {
			t.Fatalf("run %d: got %+v, want %+v", i, again, first)
		}
	}
}
