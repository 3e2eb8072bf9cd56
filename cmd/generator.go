package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abhisek/quizify/internal/config"
	"github.com/abhisek/quizify/internal/llm"
	"github.com/abhisek/quizify/internal/platform/cache"
	"github.com/abhisek/quizify/internal/quizgen"
	"github.com/abhisek/quizify/internal/store"
	"github.com/spf13/cobra"
)

// generation bundles the pieces every command that extracts documents needs.
type generation struct {
	cfg   *config.Config
	log   *slog.Logger
	gen   *quizgen.LLMGenerator
	cache *cache.Cache
}

// newGeneration loads configuration and builds the generator. A missing
// provider is reported on stderr but is not an error: the generator then
// fails each request with quizgen.ErrNoProvider.
func newGeneration(ctx context.Context, st *store.Store, logOut io.Writer) (*generation, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := cfg.NewLogger(logOut)

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set GROQ_API_KEY or QUIZIFY_LLM_PROVIDER to enable extraction.")
		provider = nil
	case err != nil:
		return nil, fmt.Errorf("LLM provider: %w", err)
	}

	g := &generation{
		cfg: cfg,
		log: log,
		gen: quizgen.New(provider, cfg.GeneratorConfig()).WithLogger(log),
	}

	if cfg.Cache.URL != "" {
		c, err := cache.New(ctx, cfg.Cache.URL, cfg.Cache.TTL)
		if err != nil {
			// Extraction still works uncached.
			log.Warn("document cache unavailable", "error", err)
		} else {
			g.cache = c
			g.gen.WithCache(c)
		}
	}
	return g, nil
}

func (g *generation) Close() {
	if g.cache != nil {
		g.cache.Close()
	}
}

// difficultyFlag reads and validates the --difficulty flag.
func difficultyFlag(cmd *cobra.Command) (quizgen.Level, error) {
	v, _ := cmd.Flags().GetString("difficulty")
	level, ok := quizgen.ParseLevel(v)
	if !ok {
		return "", fmt.Errorf("invalid difficulty %q: must be easy, medium, hard or mixed", v)
	}
	return level, nil
}

// latestDocument returns the most recently saved document.
func latestDocument(ctx context.Context, repo store.DocumentRepo) (*store.SavedDocument, error) {
	saved, err := repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load latest document: %w", err)
	}
	if saved == nil {
		return nil, errors.New("no saved documents yet; run extract or study on a file first")
	}
	return saved, nil
}

func addExtractionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("difficulty", "d", string(quizgen.LevelMedium), "Quiz difficulty: easy, medium, hard or mixed")
	cmd.Flags().Bool("last", false, "Reuse the most recently saved document instead of extracting")
	cmd.Flags().Bool("no-save", false, "Do not save the extracted document")
}
