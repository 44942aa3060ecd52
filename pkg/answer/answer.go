// Package answer composes the user-facing reply from a matched entity, the
// fetched coach, and an optional biography snippet. All functions are pure;
// missing pieces get a graceful fallback phrase instead of being dropped.
package answer

import (
	"fmt"
	"strings"

	"github.com/coolbeans/coachbot/pkg/entity"
)

// Fallback phrases for partially available data.
const (
	// FallbackNoCoach is used when the coach relation yielded nothing.
	FallbackNoCoach = "I could not find out who currently coaches %s."
	// FallbackNoBiography is used when the coach is known but no
	// encyclopedia intro exists.
	FallbackNoBiography = "No biography is available for %s."
	// FallbackUnknownEntity is the reply for queries that match no club or
	// city at all.
	FallbackUnknownEntity = "No Bundesliga club or city name was recognized in your question. Please try again."
)

// Subject describes the resolved entity an answer talks about: the club the
// pipeline settled on, and the city the user actually named when the match
// went through a city alias.
type Subject struct {
	Club *entity.Club
	City *entity.City // non-nil only when the query matched a city alias
}

// describe names the club, mentioning the city when the user asked by city.
func (subject Subject) describe() string {
	if subject.City != nil && subject.Club != nil {
		return fmt.Sprintf("%s, the Bundesliga club from %s", subject.Club.Name, subject.City.Name)
	}
	if subject.Club != nil {
		return subject.Club.Name
	}
	return "that club"
}

// Format renders the conversational answer for one resolved question.
// A nil coach or empty biography produce fallback phrases; the function
// never omits a field silently.
func Format(subject Subject, coach *entity.Coach, biography string) string {
	described := subject.describe()

	if coach == nil {
		return fmt.Sprintf(FallbackNoCoach, described)
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "The current head coach of %s is %s.", described, coach.Name)
	if biography != "" {
		builder.WriteString("\n\n" + biography)
	} else {
		builder.WriteString(" " + fmt.Sprintf(FallbackNoBiography, coach.Name))
	}
	return builder.String()
}

// Prompt renders the answer as a prompt template for a downstream language
// model: the user's question plus the retrieved facts, prefixed with a
// system instruction.
func Prompt(question string, subject Subject, coach *entity.Coach, biography string) string {
	clubName := "unknown"
	if subject.Club != nil {
		clubName = subject.Club.Name
	}
	coachName := "unknown"
	if coach != nil {
		coachName = coach.Name
	}
	if biography == "" {
		biography = "not available"
	}

	return fmt.Sprintf(
		"System: You are a helpful assistant answering questions about the current coach "+
			"of football clubs in Germany's 1. Bundesliga.\n"+
			"User question: %s\n\n"+
			"Information retrieved:\n"+
			"Club: %s\n"+
			"Coach: %s\n"+
			"Biography: %s\n",
		question, clubName, coachName, biography,
	)
}
