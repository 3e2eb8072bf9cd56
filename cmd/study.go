package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizify/internal/app"
	"github.com/abhisek/quizify/internal/quizgen"
	"github.com/abhisek/quizify/internal/screens/study"
	"github.com/abhisek/quizify/internal/source"
)

var studyCmd = &cobra.Command{
	Use:   "study [file|-]",
	Short: "Study a document in the terminal",
	Long: `Extract concepts, a topic hierarchy and a quiz from a file and work through
them interactively. Without a file the session starts at the input form.
Use "-" to read plain text from stdin.

Supported files: .txt .md .csv .html .pdf .docx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStudy,
}

func init() {
	addExtractionFlags(studyCmd)
	studyCmd.Flags().Bool("manual", false, "Advance from concepts to hierarchy to quiz only on keypress")
	studyCmd.Flags().String("log-file", "", "Write logs to this file (the terminal is never used)")
}

func runStudy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	level, err := difficultyFlag(cmd)
	if err != nil {
		return err
	}
	last, _ := cmd.Flags().GetBool("last")
	noSave, _ := cmd.Flags().GetBool("no-save")
	manual, _ := cmd.Flags().GetBool("manual")

	if last && len(args) > 0 {
		return fmt.Errorf("--last cannot be combined with a file")
	}

	var logOut io.Writer = io.Discard
	if p, _ := cmd.Flags().GetString("log-file"); p != "" {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	g, err := newGeneration(ctx, st, logOut)
	if err != nil {
		return err
	}
	defer g.Close()

	opts := study.Options{
		Generator:  g.gen,
		Docs:       st.DocumentRepo(),
		Save:       !noSave,
		Difficulty: level,
		Timeout:    g.cfg.Generation.Timeout,
		Pacing:     study.DefaultPacing(),
		Logger:     g.log,
	}
	if manual {
		opts.Pacing = study.Pacing{}
	}

	switch {
	case last:
		saved, err := latestDocument(ctx, opts.Docs)
		if err != nil {
			return err
		}
		doc, err := quizgen.LoadDocument(saved)
		if err != nil {
			return err
		}
		opts.Document = doc
		opts.Source = saved.Source
		if l, ok := quizgen.ParseLevel(saved.Difficulty); ok {
			opts.Difficulty = l
		}
	case len(args) == 1:
		text, err := source.LoadFile(args[0])
		if err != nil {
			return err
		}
		opts.Source = args[0]
		opts.Text = text
		opts.AutoStart = true
	}

	g.log.Info("starting study session", "source", opts.Source, "difficulty", opts.Difficulty)
	return app.Run(opts)
}
