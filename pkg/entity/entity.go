// Package entity defines the in-memory data model for Bundesliga clubs,
// their home cities, and the alias index used to resolve free-text queries
// to a single entity.
package entity

import "sort"

// Kind distinguishes the two entity types an alias can resolve to.
type Kind string

const (
	// KindClub identifies a Bundesliga club entity.
	KindClub Kind = "club"
	// KindCity identifies a home-city entity.
	KindCity Kind = "city"
)

// Club is a Bundesliga club as returned by the reference-data query.
type Club struct {
	ID      string   `json:"id"`                // knowledge-graph entity ID (e.g., "Q15789")
	Name    string   `json:"name"`              // canonical English label
	CityID  string   `json:"city_id"`           // entity ID of the home city
	City    string   `json:"city"`              // canonical label of the home city
	Aliases []string `json:"aliases,omitempty"` // alternate labels, sorted
}

// City is a home city referenced by at least one club.
type City struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// Coach is the person currently holding the head-coach position at a club.
type Coach struct {
	Name      string `json:"name"`
	ClubID    string `json:"club_id"`
	Biography string `json:"biography,omitempty"`
}

// Catalog holds the full reference data set for one session. It is built
// once at startup and treated as read-only afterwards.
type Catalog struct {
	Clubs  []*Club `json:"clubs"`
	Cities []*City `json:"cities"`
}

// Sort orders clubs and cities by canonical name so that every derived
// structure (alias index, city-to-club resolution) is deterministic.
func (catalog *Catalog) Sort() {
	sort.Slice(catalog.Clubs, func(i, j int) bool {
		return catalog.Clubs[i].Name < catalog.Clubs[j].Name
	})
	sort.Slice(catalog.Cities, func(i, j int) bool {
		return catalog.Cities[i].Name < catalog.Cities[j].Name
	})
}

// ClubsInCity returns the clubs whose home city has the given entity ID,
// ordered by canonical club name. More than one club may share a city
// (Berlin hosts several); the caller takes the first for a deterministic pick.
func (catalog *Catalog) ClubsInCity(cityID string) []*Club {
	var clubs []*Club
	for _, club := range catalog.Clubs {
		if club.CityID == cityID {
			clubs = append(clubs, club)
		}
	}
	sort.Slice(clubs, func(i, j int) bool {
		return clubs[i].Name < clubs[j].Name
	})
	return clubs
}
