package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizify/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizify",
	Short: "Turn study material into concepts, a topic map and a quiz",
	Long: `Quizify reads educational text, asks a generation service to pull out the
key concepts, a topic hierarchy and a multiple-choice quiz, and lets you
work through them in the terminal or over HTTP.`,
	SilenceUsage: true,
}

// Execute runs the command named on the command line.
func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite database file (default $QUIZIFY_DB, then the XDG data dir)")
	rootCmd.AddCommand(studyCmd, extractCmd, serveCmd, historyCmd, llmCmd, versionCmd)
}

// openStore opens the database named by --db, or store.DefaultDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	var err error
	if path != "" {
		err = store.EnsureDir(path)
	} else {
		path, err = store.DefaultDBPath()
	}
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return st, nil
}
