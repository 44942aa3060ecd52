package wikidata

import (
	"context"
	"fmt"
	"sort"

	"github.com/coolbeans/coachbot/pkg/entity"
	"github.com/coolbeans/coachbot/pkg/sparql"
)

// referenceQuery builds the one query that retrieves every Bundesliga club,
// its German home city, and all alternate labels for both in the configured
// language.
func (client *Client) referenceQuery() string {
	return sparql.NewSelect("?club", "?clubLabel", "?altClubLabel", "?city", "?cityLabel", "?altCityLabel").
		Distinct().
		Where("?club", propInstanceOf, entityFootballClub).
		Where("?club", propLeague, entityBundesliga).
		Where("?club", propHeadquarters, "?city").
		Where("?city", propInstanceOf+"/"+propSubclassOf+"*", entityCity).
		Where("?city", propCountry, entityGermany).
		Where("?club", "rdfs:label", "?clubLabel").
		Where("?city", "rdfs:label", "?cityLabel").
		Optional(
			[]sparql.TriplePattern{{Subject: "?club", Predicate: "skos:altLabel", Object: "?altClubLabel"}},
			sparql.LangFilter("?altClubLabel", client.language),
		).
		Optional(
			[]sparql.TriplePattern{{Subject: "?city", Predicate: "skos:altLabel", Object: "?altCityLabel"}},
			sparql.LangFilter("?altCityLabel", client.language),
		).
		FilterLang("?clubLabel", client.language).
		FilterLang("?cityLabel", client.language).
		String()
}

// FetchReferenceData retrieves the full club and city catalog for one
// session. The result is sorted by canonical name so every derived
// structure is deterministic. An endpoint failure or an empty result set is
// returned as an error; the caller decides whether that is fatal (it is at
// startup, per the interactive loop).
func (client *Client) FetchReferenceData(ctx context.Context) (*entity.Catalog, error) {
	results, err := client.runQuery(ctx, client.referenceQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reference data: %w", err)
	}

	clubs := make(map[string]*entity.Club)
	cities := make(map[string]*entity.City)
	clubAliases := make(map[string]map[string]bool)
	cityAliases := make(map[string]map[string]bool)

	for _, row := range results.Rows() {
		clubID, haveClub := row.EntityID("club")
		cityID, haveCity := row.EntityID("city")
		clubLabel, _ := row.Get("clubLabel")
		cityLabel, _ := row.Get("cityLabel")
		if !haveClub || !haveCity || clubLabel == "" || cityLabel == "" {
			continue
		}

		if _, seen := clubs[clubID]; !seen {
			clubs[clubID] = &entity.Club{ID: clubID, Name: clubLabel, CityID: cityID, City: cityLabel}
			clubAliases[clubID] = make(map[string]bool)
		}
		if _, seen := cities[cityID]; !seen {
			cities[cityID] = &entity.City{ID: cityID, Name: cityLabel}
			cityAliases[cityID] = make(map[string]bool)
		}

		if altClub, bound := row.Get("altClubLabel"); bound && altClub != "" {
			clubAliases[clubID][altClub] = true
		}
		if altCity, bound := row.Get("altCityLabel"); bound && altCity != "" {
			cityAliases[cityID][altCity] = true
		}
	}

	if len(clubs) == 0 {
		client.logger.Errorw("reference query returned no clubs")
		return nil, fmt.Errorf("reference data unavailable: query returned no clubs")
	}

	catalog := &entity.Catalog{}
	for clubID, club := range clubs {
		club.Aliases = sortedAliases(clubAliases[clubID], club.Name)
		catalog.Clubs = append(catalog.Clubs, club)
	}
	for cityID, city := range cities {
		city.Aliases = sortedAliases(cityAliases[cityID], city.Name)
		catalog.Cities = append(catalog.Cities, city)
	}
	catalog.Sort()

	client.logger.Infow("reference data loaded", "clubs", len(catalog.Clubs), "cities", len(catalog.Cities))
	return catalog, nil
}

// sortedAliases turns an alias set into a sorted slice, dropping the
// canonical name itself (it is indexed separately).
func sortedAliases(set map[string]bool, canonical string) []string {
	var aliases []string
	for alias := range set {
		if alias != canonical {
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	return aliases
}
