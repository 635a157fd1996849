package main

import (
	"context"
	"fmt"

	"corral/pkg/corpus"
	"corral/pkg/pipeline"
	"corral/pkg/runstore"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newBrowseCmdWithStore creates the browse command. A nil store opens
// the production run store when --run is passed.
func newBrowseCmdWithStore(store *runstore.Store) *cobra.Command {
	var (
		flags runFlags
		runID string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse clusters and documents interactively",
		Long: `Browse opens a terminal UI over a clustering run. With --corpus the
corpus is clustered fresh and document bodies are readable; with --run
a saved run's assignments are loaded from the run history, where only
ids, titles, and labels are kept.

Keys: j/k move, enter drill down, esc back, / filter, q quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadBrowseData(cmd, &flags, store, runID)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newBrowseModel(data), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run browser: %w", err)
			}
			return nil
		},
	}

	flags.registerCorpus(cmd)
	flags.registerCluster(cmd)
	cmd.Flags().StringVar(&runID, "run", "", "browse a saved run instead of clustering fresh")

	return cmd
}

// loadBrowseData builds the browser dataset from a fresh clustering run
// or from a saved run's assignments.
func loadBrowseData(cmd *cobra.Command, flags *runFlags, store *runstore.Store, runID string) (browseData, error) {
	if runID != "" {
		if store == nil {
			s, closeStore, err := openRunStore()
			if err != nil {
				return browseData{}, err
			}
			defer closeStore()
			store = s
		}
		return browseSavedRun(cmd.Context(), store, runID)
	}

	corpusPath, params, _, err := flags.resolveCluster(cmd)
	if err != nil {
		return browseData{}, err
	}
	docs, err := corpus.Load(corpusPath)
	if err != nil {
		return browseData{}, err
	}
	run, err := pipeline.Cluster(cmd.Context(), docs, params)
	if err != nil {
		return browseData{}, err
	}
	return browseFreshRun(corpusPath, run), nil
}

// browseFreshRun converts a pipeline run into browser data.
func browseFreshRun(corpusPath string, run *pipeline.ClusterRun) browseData {
	data := browseData{Source: corpusPath}
	for _, c := range run.Clusters {
		bc := browseCluster{Label: c.Label}
		for _, t := range c.TopTerms {
			bc.Terms = append(bc.Terms, t.Token)
		}
		for _, d := range c.Members {
			bc.Docs = append(bc.Docs, browseDoc{ID: d.ID, Title: d.Title, Body: d.Body})
		}
		data.Clusters = append(data.Clusters, bc)
	}
	return data
}

// browseSavedRun loads a saved run's assignments into browser data.
func browseSavedRun(ctx context.Context, store *runstore.Store, runID string) (browseData, error) {
	run, err := store.GetRun(ctx, runID)
	if err != nil {
		return browseData{}, err
	}
	assignments, err := store.Assignments(ctx, run.ID)
	if err != nil {
		return browseData{}, err
	}

	data := browseData{Source: fmt.Sprintf("run %s (%s)", run.ID, run.CorpusPath)}
	for _, a := range assignments {
		if len(data.Clusters) == 0 || data.Clusters[len(data.Clusters)-1].Label != a.Label {
			data.Clusters = append(data.Clusters, browseCluster{Label: a.Label})
		}
		last := &data.Clusters[len(data.Clusters)-1]
		last.Docs = append(last.Docs, browseDoc{ID: a.DocID, Title: a.Title})
	}
	return data, nil
}
