package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"corral/pkg/corpus"
	"corral/pkg/pipeline"

	"github.com/spf13/cobra"
)

// newEvalCmd creates the eval command: cluster purity against golden labels.
func newEvalCmd() *cobra.Command {
	var (
		flags  runFlags
		golden string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Score a clustering against golden topic labels",
		Long: `Eval clusters the corpus and scores the result against a YAML file
mapping document ids to their expected topic:

    "1": grain
    "2": crude

Purity is the share of labeled documents that land in a cluster whose
majority topic matches theirs. Golden ids absent from the clustering
are reported as missing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpusPath, params, cfg, err := flags.resolveCluster(cmd)
			if err != nil {
				return err
			}

			goldenPath := golden
			if !cmd.Flags().Changed("golden") && cfg.Golden != "" {
				goldenPath = cfg.Golden
			}
			if goldenPath == "" {
				return errors.New("no golden labels: pass --golden or set golden in corral.toml")
			}

			fh, err := os.Open(goldenPath)
			if err != nil {
				return fmt.Errorf("open golden labels: %w", err)
			}
			defer fh.Close() //nolint:errcheck // read-only file

			g, err := pipeline.ReadGolden(fh)
			if err != nil {
				return err
			}

			docs, err := corpus.Load(corpusPath)
			if err != nil {
				return err
			}
			run, err := pipeline.Cluster(cmd.Context(), docs, params)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatEvaluation(goldenPath, pipeline.Evaluate(run, g)))
			return nil
		},
	}

	flags.registerCorpus(cmd)
	flags.registerCluster(cmd)
	cmd.Flags().StringVar(&golden, "golden", "", "YAML file of document id to expected topic")

	return cmd
}

// formatEvaluation renders the purity summary.
func formatEvaluation(goldenPath string, ev *pipeline.Evaluation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Purity %.3f against %s\n", ev.Purity, goldenPath)
	fmt.Fprintf(&b, "  labeled  %d documents\n", ev.Labeled)
	fmt.Fprintf(&b, "  correct  %d in their cluster's majority topic\n", ev.Correct)
	if len(ev.Missing) > 0 {
		fmt.Fprintf(&b, "  missing  %s\n", strings.Join(ev.Missing, " "))
	}

	return b.String()
}
