package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexirank/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lexirank",
	Short: "Vocabulary and grammar level placement",
	Long:  "Lexirank scores vocabulary and grammar placement tests and maps students to a rank and sublevel.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTake(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEXIRANK_DB env var)")
	addTakeFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(ranksCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LEXIRANK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
