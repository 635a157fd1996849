package pipeline

import (
	"sort"

	"corral/pkg/tfidf"
)

// Term is one vocabulary token with its centroid weight.
type Term struct {
	Token  string
	Weight float64
}

// TopTerms returns up to n terms with the largest centroid weights, ties
// broken by lower vocabulary index so the order is deterministic. Terms
// with non-positive weight are omitted: a zero weight means the token
// appears in every document and says nothing about this cluster.
func TopTerms(centroid []float64, vocab *tfidf.Vocabulary, n int) []Term {
	idx := make([]int, 0, len(centroid))
	for i, w := range centroid {
		if w > 0 {
			idx = append(idx, i)
		}
	}
	sort.Slice(idx, func(a, b int) bool {
		if centroid[idx[a]] != centroid[idx[b]] {
			return centroid[idx[a]] > centroid[idx[b]]
		}
		return idx[a] < idx[b]
	})
	if n < len(idx) {
		idx = idx[:n]
	}

	terms := make([]Term, len(idx))
	for i, j := range idx {
		terms[i] = Term{Token: vocab.Token(j), Weight: centroid[j]}
	}
	return terms
}
