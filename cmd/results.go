package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexirank/internal/leveling"
	"github.com/abhisek/lexirank/internal/ranking"
	"github.com/abhisek/lexirank/internal/store"
	"github.com/abhisek/lexirank/internal/ui/theme"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Browse stored level results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored results, newest first",
	Args:  cobra.NoArgs,
	RunE:  runResultsList,
}

var resultsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one stored result with its submitted answers",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultsView,
}

func init() {
	resultsListCmd.Flags().String("student", "", "Only show results for this student")
	resultsListCmd.Flags().Int("limit", 20, "Maximum number of results")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsViewCmd)
}

func runResultsList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	student, _ := cmd.Flags().GetString("student")
	limit, _ := cmd.Flags().GetInt("limit")
	opts := store.QueryOpts{Limit: limit}

	var recs []store.ResultRecord
	if student != "" {
		recs, err = st.ResultRepo().ListByStudent(cmd.Context(), student, opts)
	} else {
		recs, err = st.ResultRepo().List(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(w, "No results yet.")
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("ID", "WHEN", "STUDENT", "TEST", "LEVEL", "ANSWERS", "CLIENT")
	for _, r := range recs {
		t.Row(
			r.ID,
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.StudentID,
			r.TestID,
			levelLabel(r.Rank, r.Sublevel),
			strconv.Itoa(r.AnswerCount),
			clientLabel(r),
		)
	}
	fmt.Fprintln(w, t.String())
	return nil
}

func runResultsView(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.ResultRepo().Get(cmd.Context(), args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("result %s not found", args[0])
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "ID:        %s\n", rec.ID)
	fmt.Fprintf(w, "Sequence:  %d\n", rec.Sequence)
	fmt.Fprintf(w, "When:      %s\n", rec.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Student:   %s\n", rec.StudentID)
	fmt.Fprintf(w, "Test:      %s\n", rec.TestID)
	fmt.Fprintf(w, "Level:     %s\n", levelLabel(rec.Rank, rec.Sublevel))
	fmt.Fprintf(w, "Client:    %s\n", clientLabel(*rec))
	fmt.Fprintf(w, "Source:    %s\n", rec.Source)
	fmt.Fprintln(w, "Answers:")

	var pretty any
	if err := json.Unmarshal(rec.Answers, &pretty); err != nil {
		fmt.Fprintln(w, string(rec.Answers))
		return nil
	}
	b, err := json.MarshalIndent(pretty, "  ", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "  "+string(b))
	return nil
}

func levelLabel(rank, sublevel int) string {
	name := ranking.Info(rank).Name
	if sublevel == leveling.MasteryMarker {
		return fmt.Sprintf("%s %d (mastered)", name, rank)
	}
	return fmt.Sprintf("%s %d.%d", name, rank, sublevel)
}

func clientLabel(r store.ResultRecord) string {
	if r.ClientRank == nil || r.ClientSublevel == nil {
		return "-"
	}
	label := fmt.Sprintf("%d.%d", *r.ClientRank, *r.ClientSublevel)
	if !r.Reconciled {
		label += " (mismatch)"
	}
	return label
}
