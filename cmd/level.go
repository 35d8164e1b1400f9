package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexirank/internal/answers"
	"github.com/abhisek/lexirank/internal/leveling"
	"github.com/abhisek/lexirank/internal/scoring"
	"github.com/abhisek/lexirank/internal/store"
)

var levelCmd = &cobra.Command{
	Use:   "level <file|->",
	Short: "Determine the level for an answer sheet",
	Long: `Reads an answer sheet (JSON) from a file or stdin and prints the rank and
sublevel. With --save the result is stored like a submitted test.`,
	Args: cobra.ExactArgs(1),
	RunE: runLevel,
}

func init() {
	levelCmd.Flags().Bool("json", false, "Print the result as JSON")
	levelCmd.Flags().Bool("save", false, "Store the result in the database")
}

func runLevel(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	sheet, err := answers.Read(r)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	save, _ := cmd.Flags().GetBool("save")

	var repo store.ResultRepo
	if save {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		repo = st.ResultRepo()
	}
	svc := scoring.NewService(repo, slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))).
		WithSource(store.SourceClient)

	out, err := svc.Score(cmd.Context(), sheet)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(levelOutput(out))
	}

	fmt.Fprintln(w, out.Result.String())
	printBreakdown(w, out.Report)
	if out.Mismatch() {
		fmt.Fprintf(w, "\nclient estimate %s differs from the computed level\n", out.Client)
	}
	if out.Record != nil {
		fmt.Fprintf(w, "\nsaved as %s\n", out.Record.ID)
	}
	return nil
}

type levelJSON struct {
	Rank       int                  `json:"rank"`
	Sublevel   int                  `json:"sublevel"`
	Tier       string               `json:"tier"`
	Mastered   bool                 `json:"mastered"`
	Reconciled bool                 `json:"reconciled"`
	ResultID   string               `json:"result_id,omitempty"`
	Ranks      []leveling.RankStats `json:"ranks"`
}

func levelOutput(out *scoring.Outcome) levelJSON {
	j := levelJSON{
		Rank:       out.Result.Rank,
		Sublevel:   out.Result.Sublevel,
		Tier:       out.Tier.Name,
		Mastered:   out.Result.IsMastery(),
		Reconciled: out.Reconciled,
		Ranks:      out.Report.Ranks,
	}
	if out.Record != nil {
		j.ResultID = out.Record.ID
	}
	return j
}

func printBreakdown(w io.Writer, report leveling.Report) {
	if len(report.Ranks) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, rs := range report.Ranks {
		status := "fail"
		switch {
		case !rs.Examined:
			status = "not examined"
		case rs.Passed():
			status = "pass"
		}
		fmt.Fprintf(w, "  rank %2d  %d/%d correct  %s\n", rs.Rank, rs.Correct, rs.Total, status)
	}
}
