package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/store"
)

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "List recent analyses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		verdict, _ := cmd.Flags().GetString("verdict")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := store.Filter{Limit: limit}
		if verdict != "" {
			status, ok := parseVerdictFilter(verdict)
			if !ok {
				return eris.Errorf("invalid verdict %q (expected Real, Fake, or Uncertain)", verdict)
			}
			filter.Status = status
		}

		analyses, err := st.ListRecent(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "list analyses")
		}

		if len(analyses) == 0 {
			fmt.Fprintln(os.Stderr, "No analyses found.")
			return nil
		}

		formatAnalysesList(os.Stdout, analyses)
		return nil
	},
}

func init() {
	analysesCmd.Flags().String("verdict", "", "filter by verdict (Real, Fake, Uncertain)")
	analysesCmd.Flags().Int("limit", 50, "max number of analyses to display")
	rootCmd.AddCommand(analysesCmd)
}

// formatAnalysesList writes a tabular list of analyses to w.
func formatAnalysesList(out io.Writer, analyses []model.Analysis) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTYPE\tVERDICT\tLANG\tLINKS\tCREATED\tSUMMARY")
	_, _ = fmt.Fprintln(w, "--\t----\t-------\t----\t-----\t-------\t-------")

	for _, a := range analyses {
		summary := a.BriefSummary
		if len(summary) > 40 {
			summary = summary[:37] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			truncateID(a.ID),
			a.InputKind,
			a.StatusText,
			a.Language,
			len(a.FactCheckLinks),
			a.CreatedAt.Format("2006-01-02 15:04"),
			summary,
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
