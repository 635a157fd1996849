package pipeline

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Golden maps document ids to their expected topic, loaded from a YAML
// file maintained alongside the corpus:
//
//	"1": grain
//	"2": crude
type Golden map[string]string

// ReadGolden parses a golden-label YAML document.
func ReadGolden(r io.Reader) (Golden, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read golden labels: %w", err)
	}
	var g Golden
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse golden labels: %w", err)
	}
	return g, nil
}

// Evaluation summarizes how well a clustering agrees with golden topics.
type Evaluation struct {
	Labeled int     // clustered documents that have a golden label
	Correct int     // documents matching their cluster's majority topic
	Purity  float64 // Correct / Labeled, 0 when nothing is labeled
	Missing []string
}

// Evaluate computes cluster purity against golden labels: within each
// cluster the majority topic counts as correct. Clustered documents
// without a golden label are ignored; golden ids that never appear in the
// clustering (unknown or skipped documents) are reported in Missing.
func Evaluate(run *ClusterRun, golden Golden) *Evaluation {
	eval := &Evaluation{}
	seen := make(map[string]bool, len(golden))
	for _, c := range run.Clusters {
		topics := make(map[string]int)
		for _, m := range c.Members {
			topic, ok := golden[m.ID]
			if !ok {
				continue
			}
			seen[m.ID] = true
			topics[topic]++
			eval.Labeled++
		}
		best := 0
		for _, n := range topics {
			if n > best {
				best = n
			}
		}
		eval.Correct += best
	}
	if eval.Labeled > 0 {
		eval.Purity = float64(eval.Correct) / float64(eval.Labeled)
	}
	for id := range golden {
		if !seen[id] {
			eval.Missing = append(eval.Missing, id)
		}
	}
	sort.Strings(eval.Missing)
	return eval
}
