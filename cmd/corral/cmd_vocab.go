package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"corral/pkg/corpus"
	"corral/pkg/pipeline"

	"github.com/spf13/cobra"
)

// newVocabCmd creates the vocab command: vocabulary statistics for a corpus.
func newVocabCmd() *cobra.Command {
	var (
		flags   runFlags
		top     int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Report vocabulary statistics for a corpus",
		Long: "Vocab tokenizes a corpus, builds its vocabulary, and reports the\n" +
			"vocabulary size along with the terms appearing in the most documents.",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpusPath, opts, _, err := flags.resolveCorpus(cmd)
			if err != nil {
				return err
			}

			docs, err := corpus.Load(corpusPath)
			if err != nil {
				return err
			}
			vecs, err := pipeline.Vectorize(cmd.Context(), docs, opts)
			if err != nil {
				return err
			}

			if jsonOut {
				out, err := json.MarshalIndent(newVocabReport(corpusPath, vecs, top), "", "  ")
				if err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), formatVocabStats(corpusPath, vecs, top))
			return nil
		},
	}

	flags.registerCorpus(cmd)
	cmd.Flags().IntVar(&top, "top", 20, "terms listed by document frequency")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the report as JSON")

	return cmd
}

// topIndices returns up to top vocabulary indices ordered by document
// frequency, highest first. Ties keep vocabulary order.
func topIndices(vecs *pipeline.Vectors, top int) []int {
	order := make([]int, vecs.Vocab.Size())
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		ni, nj := vecs.Counts.Count(order[i]), vecs.Counts.Count(order[j])
		if ni != nj {
			return ni > nj
		}
		return order[i] < order[j]
	})
	if top > len(order) {
		top = len(order)
	}
	return order[:top]
}

// formatVocabStats renders the vocabulary summary with the most frequent
// terms first.
func formatVocabStats(corpusPath string, vecs *pipeline.Vectors, top int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Vocabulary of %s\n", corpusPath)
	fmt.Fprintf(&b, "  documents  %d encoded, %d skipped\n", len(vecs.Docs), len(vecs.Skipped))
	fmt.Fprintf(&b, "  terms      %d\n", vecs.Vocab.Size())

	if top <= 0 || vecs.Vocab.Size() == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "\n  %-24s %s\n", "TERM", "DOCS")
	for _, i := range topIndices(vecs, top) {
		fmt.Fprintf(&b, "  %-24s %d\n", vecs.Vocab.Token(i), vecs.Counts.Count(i))
	}

	return b.String()
}

// vocabReport is the JSON shape of the vocab command output.
type vocabReport struct {
	Corpus    string      `json:"corpus"`
	Documents int         `json:"documents"`
	Skipped   int         `json:"skipped"`
	Terms     int         `json:"terms"`
	Top       []termEntry `json:"top,omitempty"`
}

// termEntry is one term with its document frequency.
type termEntry struct {
	Token string `json:"token"`
	Docs  int    `json:"docs"`
}

// newVocabReport builds the JSON report from a vectorization result.
func newVocabReport(corpusPath string, vecs *pipeline.Vectors, top int) vocabReport {
	r := vocabReport{
		Corpus:    corpusPath,
		Documents: len(vecs.Docs),
		Skipped:   len(vecs.Skipped),
		Terms:     vecs.Vocab.Size(),
	}
	if top <= 0 {
		return r
	}
	for _, i := range topIndices(vecs, top) {
		r.Top = append(r.Top, termEntry{Token: vecs.Vocab.Token(i), Docs: vecs.Counts.Count(i)})
	}
	return r
}
