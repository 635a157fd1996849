package main

import (
	"fmt"

	"corral/internal/version"

	"github.com/spf13/cobra"
)

// newRootCmd creates the root corral command with all subcommands attached.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "corral",
		Short:         "Corral document clustering toolkit",
		Long:          "corral turns a document corpus into tf-idf vectors and groups\nthe documents with k-means, reporting the top terms per cluster.",
		Version:       fmt.Sprintf("corral %s", version.String()),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(
		newClusterCmdWithStore(nil),
		newVocabCmd(),
		newRunsCmd(),
		newEvalCmd(),
		newBrowseCmdWithStore(nil),
	)

	return cmd
}
