// Package chat wires the full question pipeline (normalize, match, coach
// fetch, biography fetch, format) into a single-turn Answer call and the
// interactive stdin loop around it.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/coolbeans/coachbot/pkg/answer"
	"github.com/coolbeans/coachbot/pkg/entity"
	"github.com/coolbeans/coachbot/pkg/match"
	"github.com/coolbeans/coachbot/pkg/normalize"
)

// ExitCommand terminates the interactive loop (case-insensitive).
const ExitCommand = "exit"

// GraphQuery is the knowledge-graph side of the pipeline. *wikidata.Client
// implements it; tests substitute fakes.
type GraphQuery interface {
	FetchReferenceData(ctx context.Context) (*entity.Catalog, error)
	FetchCoach(ctx context.Context, club *entity.Club) (*entity.Coach, error)
}

// SummaryFetcher is the encyclopedia side of the pipeline. *wikipedia.Client
// implements it.
type SummaryFetcher interface {
	FetchIntro(ctx context.Context, title string) (string, error)
}

// Completer optionally rewrites the prompt template into a model-generated
// answer. May be nil.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Mode selects the output shape of a session.
type Mode string

const (
	// ModeAnswer prints the formatted conversational answer.
	ModeAnswer Mode = "answer"
	// ModePrompt prints the raw prompt template built from the retrieved
	// facts, for feeding to a downstream model by hand.
	ModePrompt Mode = "prompt"
	// ModeLLM sends the prompt template to the configured model and prints
	// its answer, falling back to ModeAnswer output on failure.
	ModeLLM Mode = "llm"
)

// Options configures a Session.
type Options struct {
	Graph     GraphQuery
	Summaries SummaryFetcher
	Completer Completer // required only for ModeLLM
	Mode      Mode
	Overrides []match.Override // nil means match.DefaultOverrides
	Input     io.Reader
	Output    io.Writer
	Logger    *zap.SugaredLogger
}

// Session holds the per-run state: the reference catalog fetched once at
// startup, the alias index built from it, and the wired collaborators.
type Session struct {
	graph     GraphQuery
	summaries SummaryFetcher
	completer Completer
	mode      Mode
	catalog   *entity.Catalog
	matcher   *match.Matcher
	input     io.Reader
	output    io.Writer
	logger    *zap.SugaredLogger
}

// NewSession fetches the reference data and builds the alias index. A
// failure here is the one fatal condition of the tool: without reference
// data there is nothing to match against, so the error is returned for the
// caller to report and exit on.
func NewSession(ctx context.Context, options Options) (*Session, error) {
	if options.Graph == nil {
		return nil, fmt.Errorf("graph query client is required")
	}
	if options.Summaries == nil {
		return nil, fmt.Errorf("summary fetcher is required")
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	mode := options.Mode
	if mode == "" {
		mode = ModeAnswer
	}
	if mode == ModeLLM && options.Completer == nil {
		return nil, fmt.Errorf("llm mode requires a completer")
	}

	catalog, err := options.Graph.FetchReferenceData(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve clubs and cities data: %w", err)
	}

	index := entity.BuildAliasIndex(catalog)
	var matcher *match.Matcher
	if options.Overrides != nil {
		matcher = match.NewMatcherWithOverrides(index, options.Overrides)
	} else {
		matcher = match.NewMatcher(index)
	}

	return &Session{
		graph:     options.Graph,
		summaries: options.Summaries,
		completer: options.Completer,
		mode:      mode,
		catalog:   catalog,
		matcher:   matcher,
		input:     options.Input,
		output:    options.Output,
		logger:    logger,
	}, nil
}

// Catalog exposes the reference data for inspection commands.
func (session *Session) Catalog() *entity.Catalog {
	return session.catalog
}

// Answer runs the single-turn pipeline for one question and returns the
// reply text. Failures of the external lookups degrade to fallback phrases;
// the only error case is a prompt completion failure in ModeLLM, and even
// that falls back to the plain answer.
func (session *Session) Answer(ctx context.Context, question string) string {
	matched := session.matcher.Match(normalize.Normalize(question))
	if matched == nil {
		return answer.FallbackUnknownEntity
	}

	subject := session.resolveSubject(matched)
	if subject.Club == nil {
		// A city with no Bundesliga club cannot occur in catalogs derived
		// from club rows, but guard against hand-built reference data.
		return answer.FallbackUnknownEntity
	}

	coach, err := session.graph.FetchCoach(ctx, subject.Club)
	if err != nil {
		session.logger.Errorw("coach lookup failed", "club", subject.Club.Name, "error", err)
		coach = nil
	}

	biography := ""
	if coach != nil {
		biography, err = session.summaries.FetchIntro(ctx, coach.Name)
		if err != nil {
			session.logger.Errorw("biography lookup failed", "coach", coach.Name, "error", err)
			biography = ""
		}
	}

	switch session.mode {
	case ModePrompt:
		return answer.Prompt(question, subject, coach, biography)
	case ModeLLM:
		prompt := answer.Prompt(question, subject, coach, biography)
		generated, err := session.completer.Complete(ctx, prompt)
		if err != nil {
			session.logger.Errorw("llm completion failed", "error", err)
			return answer.Format(subject, coach, biography)
		}
		return generated
	default:
		return answer.Format(subject, coach, biography)
	}
}

// resolveSubject turns a match into the club the answer is about. A city
// match resolves to the first club (in canonical name order) calling that
// city home, which keeps the pick deterministic when a city hosts several.
func (session *Session) resolveSubject(matched *match.Match) answer.Subject {
	if matched.Kind() == entity.KindClub {
		return answer.Subject{Club: matched.Alias.Club}
	}

	city := matched.Alias.City
	clubs := session.catalog.ClubsInCity(city.ID)
	if len(clubs) == 0 {
		return answer.Subject{City: city}
	}
	return answer.Subject{Club: clubs[0], City: city}
}

// Run drives the interactive loop: greet, read a line, answer, repeat until
// the exit command or EOF. The loop has two states, awaiting input and
// terminated; nothing carries over between turns except the alias index
// built at session start.
func (session *Session) Run(ctx context.Context) error {
	session.greet()

	scanner := bufio.NewScanner(session.input)
	for {
		fmt.Fprint(session.output, "Your question: ")
		if !scanner.Scan() {
			fmt.Fprintln(session.output)
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.EqualFold(question, ExitCommand) {
			fmt.Fprintln(session.output, "Goodbye!")
			return nil
		}

		fmt.Fprintln(session.output)
		fmt.Fprintln(session.output, session.Answer(ctx, question))
		fmt.Fprintln(session.output, strings.Repeat("-", 80))
	}
}

func (session *Session) greet() {
	fmt.Fprintln(session.output, "Bundesliga Coach Info Bot")
	fmt.Fprintln(session.output)
	fmt.Fprintln(session.output, "Ask about current Bundesliga club coaches.")
	fmt.Fprintln(session.output, "Example questions:")
	fmt.Fprintln(session.output, " - Who is coaching Berlin?")
	fmt.Fprintln(session.output, " - Who is it for Pauli?")
	fmt.Fprintln(session.output, " - Who is Frankfurts manager?")
	fmt.Fprintln(session.output, " - Who is Bayerns coach?")
	fmt.Fprintln(session.output, "Type 'exit' to quit.")
	fmt.Fprintln(session.output)
}
