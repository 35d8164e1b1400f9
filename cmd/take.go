package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexirank/internal/app"
	"github.com/abhisek/lexirank/internal/quiz"
	"github.com/abhisek/lexirank/internal/scoring"
	"github.com/abhisek/lexirank/internal/screen"
	quizscreen "github.com/abhisek/lexirank/internal/screens/quiz"
	"github.com/abhisek/lexirank/internal/screens/welcome"
	"github.com/abhisek/lexirank/internal/store"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take a placement test in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTake(cmd)
	},
}

func init() {
	addTakeFlags(takeCmd)
}

func addTakeFlags(cmd *cobra.Command) {
	cmd.Flags().String("bank", "", "Path to a YAML question bank (default: built-in placement bank)")
	cmd.Flags().Int("count", 0, "Number of questions to ask (0 = all)")
	cmd.Flags().String("student", "", "Student name (skips the name prompt)")
}

// runTake opens the store, loads the question bank and launches the TUI.
func runTake(cmd *cobra.Command) error {
	bank := quiz.DefaultBank()
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		b, err := quiz.LoadBank(p)
		if err != nil {
			return err
		}
		bank = b
	}
	count, _ := cmd.Flags().GetInt("count")
	student, _ := cmd.Flags().GetString("student")

	questions := bank.Select(count)
	if len(questions) == 0 {
		return fmt.Errorf("bank %q has no questions", bank.ID)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	// The terminal belongs to the TUI while it runs.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := scoring.NewService(st.ResultRepo(), logger).WithSource(store.SourceClient)

	return app.Run(welcome.New(func() screen.Screen {
		return quizscreen.New(questions, bank.ID, student, svc)
	}))
}
