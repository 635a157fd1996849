package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"corral/pkg/corpus"
	"corral/pkg/pipeline"
	"corral/pkg/runstore"

	"github.com/spf13/cobra"
)

// newClusterCmdWithStore creates the cluster command. A nil store opens
// the production run store when --save is passed.
func newClusterCmdWithStore(store *runstore.Store) *cobra.Command {
	var (
		flags   runFlags
		jsonOut bool
		save    bool
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Vectorize a corpus and group the documents with k-means",
		Long: `Cluster loads a corpus file, converts every document into a tf-idf
vector, partitions the vectors with k-means, and prints one summary per
cluster: its size, its highest-weighted centroid terms, and its members.

With --save the run's parameters and document assignments are recorded
in the run history. The vocabulary and vectors are recomputed from the
corpus on every run and are never stored. With --watch the corpus is
re-clustered whenever the file changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpusPath, params, _, err := flags.resolveCluster(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := useColor(out) && !jsonOut

			if save && store == nil {
				s, closeStore, err := openRunStore()
				if err != nil {
					return err
				}
				defer closeStore()
				store = s
			}

			runOnce := func(ctx context.Context) error {
				start := time.Now()
				docs, err := corpus.Load(corpusPath)
				if err != nil {
					return err
				}
				run, err := pipeline.Cluster(ctx, docs, params)
				if err != nil {
					return err
				}
				elapsed := time.Since(start)

				var runID string
				if save {
					runID, err = saveRun(ctx, store, corpusPath, params, run)
					if err != nil {
						return err
					}
				}

				if jsonOut {
					data, err := json.MarshalIndent(newClusterReport(corpusPath, params, run, runID), "", "  ")
					if err != nil {
						return fmt.Errorf("marshal cluster report: %w", err)
					}
					fmt.Fprintln(out, string(data))
					return nil
				}

				fmt.Fprint(out, formatClusterRun(corpusPath, params, run, elapsed, DefaultTheme(), color))
				if runID != "" {
					fmt.Fprintf(out, "\nSaved run %s\n", runID)
				}
				return nil
			}

			ctx := cmd.Context()
			if err := runOnce(ctx); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			fmt.Fprintf(out, "\nWatching %s (ctrl+c to stop)\n", corpusPath)
			err = watchFile(ctx, corpusPath, func() {
				fmt.Fprintf(out, "\n%s changed, re-clustering\n\n", corpusPath)
				if err := runOnce(ctx); err != nil {
					// Exporters rewrite corpus files in place; a half-written
					// file should not kill the watch loop.
					fmt.Fprintf(out, "re-cluster failed: %v\n", err)
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	flags.registerCorpus(cmd)
	flags.registerCluster(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the run as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "record the run in the run history")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-cluster whenever the corpus file changes")

	return cmd
}

// saveRun records the run's parameters and assignments, returning the
// generated run id.
func saveRun(ctx context.Context, store *runstore.Store, corpusPath string, p pipeline.Params, run *pipeline.ClusterRun) (string, error) {
	params := runstore.SaveParams{
		CorpusPath: corpusPath,
		Vocabulary: run.Vectors.Vocab.Size(),
		Skipped:    len(run.Vectors.Skipped),
		K:          p.K,
		Seed:       p.Seed,
		Iterations: run.KMeans.Iterations,
		Converged:  run.KMeans.Converged,
	}
	for i, label := range run.KMeans.Labels {
		doc := run.Vectors.Docs[i]
		params.Assignments = append(params.Assignments, runstore.Assignment{
			DocID: doc.ID,
			Title: doc.Title,
			Label: label,
		})
	}

	id, err := store.SaveRun(ctx, params)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	return id, nil
}

// formatClusterRun renders the human-readable run summary.
func formatClusterRun(corpusPath string, p pipeline.Params, run *pipeline.ClusterRun, elapsed time.Duration, theme Theme, color bool) string {
	var b strings.Builder

	head := fmt.Sprintf("Clustered %s in %s", corpusPath, elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "%s\n", theme.heading(head, color))
	fmt.Fprintf(&b, "  documents  %d clustered, %d skipped\n", len(run.Vectors.Docs), len(run.Vectors.Skipped))
	fmt.Fprintf(&b, "  vocabulary %d terms\n", run.Vectors.Vocab.Size())
	fmt.Fprintf(&b, "  k-means    k=%d seed=%d iterations=%d converged=%t\n",
		p.K, p.Seed, run.KMeans.Iterations, run.KMeans.Converged)

	for _, c := range run.Clusters {
		b.WriteString("\n")
		heading := fmt.Sprintf("Cluster %d (%d documents)", c.Label, len(c.Members))
		fmt.Fprintf(&b, "%s  %s\n", theme.heading(heading, color), theme.muted(formatTerms(c.TopTerms), color))
		for _, m := range c.Members {
			fmt.Fprintf(&b, "  %-10s %s\n", m.ID, truncateTitle(m.Title, 70))
		}
	}

	if len(run.Vectors.Skipped) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s\n", theme.heading("Skipped", color))
		for _, s := range run.Vectors.Skipped {
			fmt.Fprintf(&b, "  %-10s %s\n", s.ID, s.Reason)
		}
	}

	return b.String()
}

// formatTerms joins the top centroid terms for display.
func formatTerms(terms []pipeline.Term) string {
	if len(terms) == 0 {
		return "(no distinguishing terms)"
	}
	tokens := make([]string, len(terms))
	for i, t := range terms {
		tokens[i] = t.Token
	}
	return strings.Join(tokens, " ")
}

// truncateTitle shortens s to max runes, appending an ellipsis.
func truncateTitle(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// clusterReport is the JSON shape of a clustering run.
type clusterReport struct {
	Corpus     string         `json:"corpus"`
	Documents  int            `json:"documents"`
	Vocabulary int            `json:"vocabulary"`
	K          int            `json:"k"`
	Seed       int64          `json:"seed"`
	Iterations int            `json:"iterations"`
	Converged  bool           `json:"converged"`
	RunID      string         `json:"run_id,omitempty"`
	Clusters   []clusterEntry `json:"clusters"`
	Skipped    []skippedEntry `json:"skipped,omitempty"`
}

type clusterEntry struct {
	Label    int           `json:"label"`
	Size     int           `json:"size"`
	TopTerms []string      `json:"top_terms"`
	Members  []memberEntry `json:"members"`
}

type memberEntry struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

type skippedEntry struct {
	Pos    int    `json:"pos"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// newClusterReport converts a run into its JSON report.
func newClusterReport(corpusPath string, p pipeline.Params, run *pipeline.ClusterRun, runID string) clusterReport {
	report := clusterReport{
		Corpus:     corpusPath,
		Documents:  len(run.Vectors.Docs),
		Vocabulary: run.Vectors.Vocab.Size(),
		K:          p.K,
		Seed:       p.Seed,
		Iterations: run.KMeans.Iterations,
		Converged:  run.KMeans.Converged,
		RunID:      runID,
	}
	for _, c := range run.Clusters {
		entry := clusterEntry{
			Label:    c.Label,
			Size:     len(c.Members),
			TopTerms: []string{},
		}
		for _, t := range c.TopTerms {
			entry.TopTerms = append(entry.TopTerms, t.Token)
		}
		for _, m := range c.Members {
			entry.Members = append(entry.Members, memberEntry{ID: m.ID, Title: m.Title})
		}
		report.Clusters = append(report.Clusters, entry)
	}
	for _, s := range run.Vectors.Skipped {
		report.Skipped = append(report.Skipped, skippedEntry{Pos: s.Pos, ID: s.ID, Reason: s.Reason})
	}
	return report
}
