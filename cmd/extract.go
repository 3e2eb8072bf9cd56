package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/quizify/internal/analytics"
	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/quizgen"
	"github.com/abhisek/quizify/internal/source"
	"github.com/abhisek/quizify/internal/store"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file|->",
	Short: "Extract a knowledge document and print it as JSON",
	Long: `Run one extraction and print the normalized document together with the
concept heatmap. Use "-" to read plain text from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	addExtractionFlags(extractCmd)
}

// extractOutput is what the extract command prints.
type extractOutput struct {
	ID       int                     `json:"id,omitempty"`
	Source   string                  `json:"source,omitempty"`
	Document knowledge.WireDocument  `json:"document"`
	Heatmap  []analytics.ConceptChip `json:"heatmap"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	level, err := difficultyFlag(cmd)
	if err != nil {
		return err
	}
	last, _ := cmd.Flags().GetBool("last")
	noSave, _ := cmd.Flags().GetBool("no-save")

	switch {
	case last && len(args) > 0:
		return fmt.Errorf("--last cannot be combined with a file")
	case !last && len(args) == 0:
		return fmt.Errorf("a file (or - for stdin) is required unless --last is given")
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	docs := st.DocumentRepo()

	var out extractOutput
	var doc *knowledge.Document

	if last {
		saved, err := latestDocument(ctx, docs)
		if err != nil {
			return err
		}
		if doc, err = quizgen.LoadDocument(saved); err != nil {
			return err
		}
		out.ID, out.Source = saved.ID, saved.Source
	} else {
		text, err := source.LoadFile(args[0])
		if err != nil {
			return err
		}
		doc, err = generate(ctx, st, quizgen.Request{Text: text, Difficulty: level})
		if err != nil {
			return err
		}
		out.Source = args[0]
		if !noSave {
			saved, err := quizgen.SaveDocument(ctx, docs, args[0], level, doc, store.DefaultHistorySize)
			if err != nil {
				fmt.Fprintln(os.Stderr, "warning: document not saved:", err)
			} else {
				out.ID = saved.ID
			}
		}
	}

	out.Document = doc.ToWire()
	out.Heatmap = analytics.Heatmap(doc)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// generate runs a single extraction with logs on stderr.
func generate(ctx context.Context, st *store.Store, req quizgen.Request) (*knowledge.Document, error) {
	g, err := newGeneration(ctx, st, os.Stderr)
	if err != nil {
		return nil, err
	}
	defer g.Close()

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Generation.Timeout)
	defer cancel()

	doc, err := g.gen.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return doc, nil
}
