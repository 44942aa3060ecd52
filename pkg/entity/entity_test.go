package entity

import (
	"reflect"
	"testing"
)

func testCatalog() *Catalog {
	return &Catalog{
		Clubs: []*Club{
			{ID: "Q15789", Name: "FC Bayern München", CityID: "Q1726", City: "Munich", Aliases: []string{"Bayern Munich", "Bayern", "FCB"}},
			{ID: "Q1143", Name: "Hertha BSC", CityID: "Q64", City: "Berlin", Aliases: []string{"Hertha Berlin"}},
			{ID: "Q162465", Name: "1. FC Union Berlin", CityID: "Q64", City: "Berlin", Aliases: []string{"Union Berlin"}},
			{ID: "Q7775", Name: "FC St. Pauli", CityID: "Q1055", City: "Hamburg", Aliases: []string{"St. Pauli"}},
		},
		Cities: []*City{
			{ID: "Q64", Name: "Berlin"},
			{ID: "Q1055", Name: "Hamburg"},
			{ID: "Q1726", Name: "Munich", Aliases: []string{"München"}},
		},
	}
}

func TestClubsInCityDeterministicOrder(t *testing.T) {
	catalog := testCatalog()

	berlinClubs := catalog.ClubsInCity("Q64")
	if len(berlinClubs) != 2 {
		t.Fatalf("ClubsInCity(Q64): got %d clubs, want 2", len(berlinClubs))
	}

	var names []string
	for _, club := range berlinClubs {
		names = append(names, club.Name)
	}
	want := []string{"1. FC Union Berlin", "Hertha BSC"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ClubsInCity order: got %v, want %v", names, want)
	}
}

func TestClubsInCityUnknownCity(t *testing.T) {
	catalog := testCatalog()
	if clubs := catalog.ClubsInCity("Q0"); len(clubs) != 0 {
		t.Errorf("ClubsInCity on unknown city: got %d clubs, want 0", len(clubs))
	}
}

func TestBuildAliasIndexExactLookup(t *testing.T) {
	index := BuildAliasIndex(testCatalog())

	alias, found := index.Exact("bayern munich")
	if !found {
		t.Fatal("expected exact hit for normalized alias 'bayern munich'")
	}
	if alias.Kind != KindClub || alias.Club.ID != "Q15789" {
		t.Errorf("wrong entity for 'bayern munich': got %+v", alias)
	}

	cityAlias, found := index.Exact("munchen")
	if !found {
		t.Fatal("expected exact hit for umlaut-folded city alias 'munchen'")
	}
	if cityAlias.Kind != KindCity || cityAlias.City.ID != "Q1726" {
		t.Errorf("wrong entity for 'munchen': got %+v", cityAlias)
	}

	if _, found := index.Exact("unknown thing"); found {
		t.Error("unexpected exact hit for unindexed alias")
	}
}

func TestAliasIndexScanOrder(t *testing.T) {
	index := BuildAliasIndex(testCatalog())
	aliases := index.Aliases()

	// Clubs must come before cities.
	seenCity := false
	for _, alias := range aliases {
		if alias.Kind == KindCity {
			seenCity = true
		} else if seenCity {
			t.Fatalf("club alias %q after a city alias; scan order broken", alias.Text)
		}
	}

	// Within a block, longer aliases come first, lexicographic on ties.
	for i := 1; i < len(aliases); i++ {
		a, b := aliases[i-1], aliases[i]
		if a.Kind != b.Kind {
			continue
		}
		if len(a.Text) < len(b.Text) {
			t.Fatalf("alias %q (len %d) before longer %q (len %d)", a.Text, len(a.Text), b.Text, len(b.Text))
		}
		if len(a.Text) == len(b.Text) && a.Text > b.Text {
			t.Fatalf("equal-length aliases out of lexicographic order: %q before %q", a.Text, b.Text)
		}
	}
}

func TestAliasIndexDeterministicAcrossBuilds(t *testing.T) {
	first := BuildAliasIndex(testCatalog())
	second := BuildAliasIndex(testCatalog())

	if first.Len() != second.Len() {
		t.Fatalf("index sizes differ: %d vs %d", first.Len(), second.Len())
	}
	for i, alias := range first.Aliases() {
		other := second.Aliases()[i]
		if alias.Text != other.Text || alias.Kind != other.Kind {
			t.Fatalf("scan order differs at %d: %q/%s vs %q/%s", i, alias.Text, alias.Kind, other.Text, other.Kind)
		}
	}
}
