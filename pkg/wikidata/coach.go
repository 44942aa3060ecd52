package wikidata

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/coolbeans/coachbot/pkg/entity"
	"github.com/coolbeans/coachbot/pkg/sparql"
)

// placeholderLabel matches label-service fallbacks for entities without a
// label in the requested language (the service returns the bare entity ID).
var placeholderLabel = regexp.MustCompile(`^Q[0-9]+$`)

// personName requires at least two words of letters (with the usual name
// punctuation), rejecting malformed or placeholder labels.
var personName = regexp.MustCompile(`^\p{L}[\p{L}'.-]*(?: \p{L}[\p{L}'.-]*)+$`)

// coachResultLimit caps the head-coach result set. A club has at most a
// handful of current coach statements; anything beyond this is endpoint noise.
const coachResultLimit = 10

// coachQuery builds the head-coach query for one club entity. The query is
// scoped to the club's entity ID rather than a label regex, so two clubs
// with similar names can never bleed into each other's results. Coaches
// whose position carries an end time are excluded.
func (client *Client) coachQuery(clubID string) string {
	return sparql.NewSelect("?coach", "?coachLabel").
		Distinct().
		Where("wd:"+clubID, propHeadCoach, "?coach").
		FilterNotExists(sparql.TriplePattern{Subject: "?coach", Predicate: propEndTime, Object: "?endTime"}).
		Service("wikibase:label", client.labelService()).
		Limit(coachResultLimit).
		String()
}

// FetchCoach retrieves the current head coach of the given club.
//
// Zero usable rows yield (nil, nil): an absent coach is a normal outcome
// the caller phrases a fallback for, not an error. When the endpoint
// returns several rows, labels are sorted and the first well-formed person
// name wins, so repeated runs always pick the same coach.
func (client *Client) FetchCoach(ctx context.Context, club *entity.Club) (*entity.Coach, error) {
	if club == nil {
		return nil, fmt.Errorf("club is nil")
	}

	results, err := client.runQuery(ctx, client.coachQuery(club.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coach for %s: %w", club.Name, err)
	}

	var labels []string
	for _, row := range results.Rows() {
		label, bound := row.Get("coachLabel")
		if !bound || label == "" {
			continue
		}
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		if placeholderLabel.MatchString(label) || !personName.MatchString(label) {
			continue
		}
		return &entity.Coach{Name: label, ClubID: club.ID}, nil
	}

	client.logger.Infow("no current head coach found", "club", club.Name, "rows", len(results.Rows()))
	return nil, nil
}
