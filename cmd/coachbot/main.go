package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coolbeans/coachbot/pkg/chat"
	"github.com/coolbeans/coachbot/pkg/config"
	"github.com/coolbeans/coachbot/pkg/llm"
	"github.com/coolbeans/coachbot/pkg/logging"
	"github.com/coolbeans/coachbot/pkg/wikidata"
	"github.com/coolbeans/coachbot/pkg/wikipedia"
)

var version = "0.1.0"

// Persistent flags shared by all subcommands.
var (
	configPath string
	logLevel   string
	promptMode bool
	llmMode    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coachbot",
		Short: "Bundesliga coach info bot",
		Long: `Coachbot answers natural-language questions about the current head
coach of German Bundesliga clubs.

It resolves club and city names (including aliases, abbreviations, and
possessive forms) against reference data from the Wikidata query service,
fetches the current head coach, and attaches the introductory paragraph
of the coach's Wikipedia article.

Example questions:
  - Who is coaching Berlin?
  - Who is it for Pauli?
  - Who is Bayerns coach?`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&promptMode, "prompt", false, "print the raw LLM prompt template instead of a conversational answer")
	rootCmd.PersistentFlags().BoolVar(&llmMode, "llm", false, "send the prompt to the configured Anthropic model and print its answer")

	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(clubsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive question loop",
		Long: `Read questions from stdin and answer them until 'exit' (case-insensitive)
or end of input. Reference data is fetched once at startup; if it cannot
be retrieved the command fails instead of running with an empty index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, logger, err := buildSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return session.Run(cmd.Context())
		},
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, logger, err := buildSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			fmt.Println(session.Answer(cmd.Context(), args[0]))
			return nil
		},
	}
}

func clubsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clubs",
		Short: "List the fetched reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			session, logger, err := buildSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			catalog := session.Catalog()
			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(catalog)
			}

			fmt.Printf("%d Bundesliga clubs in %d cities:\n\n", len(catalog.Clubs), len(catalog.Cities))
			for _, club := range catalog.Clubs {
				fmt.Printf("  %-30s %s (%d aliases)\n", club.Name, club.City, len(club.Aliases))
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print the catalog as JSON")
	return cmd
}

// newHTTPClient builds the shared HTTP client with the configured timeout,
// so every external request is bounded even when the endpoint hangs.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// buildSession loads configuration, constructs the clients, and fetches the
// reference data. The returned logger must be synced by the caller.
func buildSession(ctx context.Context) (*chat.Session, *zap.SugaredLogger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	httpClient := newHTTPClient(cfg.HTTPTimeout)

	graphClient := wikidata.NewClient(wikidata.Config{
		Endpoint:   cfg.WikidataEndpoint,
		Language:   cfg.Language,
		UserAgent:  cfg.UserAgent,
		RateLimit:  cfg.RequestInterval,
		CacheTTL:   cfg.CacheTTL,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	summaryClient := wikipedia.NewClient(wikipedia.Config{
		Endpoint:   cfg.WikipediaEndpoint,
		UserAgent:  cfg.UserAgent,
		RateLimit:  cfg.RequestInterval,
		CacheTTL:   cfg.CacheTTL,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	mode := chat.ModeAnswer
	if promptMode {
		mode = chat.ModePrompt
	}

	options := chat.Options{
		Graph:     graphClient,
		Summaries: summaryClient,
		Mode:      mode,
		Input:     os.Stdin,
		Output:    os.Stdout,
		Logger:    logger,
	}

	if llmMode {
		completer := llm.New(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if completer == nil {
			return nil, nil, fmt.Errorf("--llm requires anthropic_api_key in the config or COACHBOT_ANTHROPIC_API_KEY")
		}
		options.Completer = completer
		options.Mode = chat.ModeLLM
	}

	session, err := chat.NewSession(ctx, options)
	if err != nil {
		return nil, nil, err
	}
	return session, logger, nil
}
