package main

import (
	"fmt"
	"strings"

	"corral/pkg/runstore"

	"github.com/spf13/cobra"
)

// newRunsCmd creates the runs parent command.
func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved clustering runs",
		Long: "Runs lists and shows clustering runs recorded with cluster --save.\n" +
			"Each run stores its parameters and document assignments; vocabularies\n" +
			"and vectors are recomputed from the corpus and never stored.",
	}

	cmd.AddCommand(
		newRunsListCmdWithStore(nil),
		newRunsShowCmdWithStore(nil),
	)

	return cmd
}

// newRunsListCmdWithStore creates the runs list command. A nil store
// opens the production run store.
func newRunsListCmdWithStore(store *runstore.Store) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if store == nil {
				s, closeStore, err := openRunStore()
				if err != nil {
					return err
				}
				defer closeStore()
				store = s
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatRunsTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")

	return cmd
}

// newRunsShowCmdWithStore creates the runs show command. A nil store
// opens the production run store.
func newRunsShowCmdWithStore(store *runstore.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run's parameters and document assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if store == nil {
				s, closeStore, err := openRunStore()
				if err != nil {
					return err
				}
				defer closeStore()
				store = s
			}

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			assignments, err := store.Assignments(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatRunDetail(run, assignments))
			return nil
		},
	}

	return cmd
}

// formatRunsTable renders saved runs as an aligned table.
func formatRunsTable(runs []runstore.Run) string {
	if len(runs) == 0 {
		return "No runs recorded.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-36s  %-19s  %3s  %5s  %6s  %s\n", "ID", "CREATED", "K", "DOCS", "TERMS", "CORPUS")
	for _, r := range runs {
		fmt.Fprintf(&b, "%-36s  %-19s  %3d  %5d  %6d  %s\n",
			r.ID, r.CreatedAt, r.K, r.Documents, r.Vocabulary, r.CorpusPath)
	}
	return b.String()
}

// formatRunDetail renders one run with its assignments grouped by cluster.
func formatRunDetail(run *runstore.Run, assignments []runstore.Assignment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s\n", run.ID)
	fmt.Fprintf(&b, "  created    %s\n", run.CreatedAt)
	fmt.Fprintf(&b, "  corpus     %s\n", run.CorpusPath)
	fmt.Fprintf(&b, "  documents  %d clustered, %d skipped\n", run.Documents, run.Skipped)
	fmt.Fprintf(&b, "  vocabulary %d terms\n", run.Vocabulary)
	fmt.Fprintf(&b, "  k-means    k=%d seed=%d iterations=%d converged=%t\n",
		run.K, run.Seed, run.Iterations, run.Converged)

	// Assignments arrive ordered by label, so clusters render as
	// contiguous groups.
	lastLabel := -1
	for _, a := range assignments {
		if a.Label != lastLabel {
			fmt.Fprintf(&b, "\nCluster %d\n", a.Label)
			lastLabel = a.Label
		}
		fmt.Fprintf(&b, "  %-10s %s\n", a.DocID, truncateTitle(a.Title, 70))
	}

	return b.String()
}
