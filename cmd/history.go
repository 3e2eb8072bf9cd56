package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizify/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved documents",
	Long: "List the most recently extracted documents, newest first.\n" +
		"Use 'quizify study --last' or 'quizify extract --last' to reopen the newest one.",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		docs, err := s.DocumentRepo().List(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(docs) == 0 {
			fmt.Fprintln(out, "No saved documents.")
			return nil
		}

		t := newTable("ID", "Saved", "Source", "Level", "Concepts", "Questions")
		for _, d := range docs {
			t.Row(
				strconv.Itoa(d.ID),
				d.Timestamp.Local().Format(timeLayout),
				truncate(sourceLabel(d.Source), 32),
				d.Difficulty,
				strconv.Itoa(d.Concepts),
				strconv.Itoa(d.Questions),
			)
		}
		fmt.Fprintln(out, t.String())
		return nil
	},
}

func sourceLabel(src string) string {
	switch src {
	case "":
		return "(unnamed)"
	case "-":
		return "stdin"
	}
	return filepath.Base(src)
}

func init() {
	historyCmd.Flags().IntP("limit", "n", store.DefaultHistorySize, "Number of documents to show")
}
