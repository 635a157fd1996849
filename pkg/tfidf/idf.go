package tfidf

import (
	"fmt"
	"math"
)

// IDFTable holds the inverse document frequency for every vocabulary
// index: idf[i] = log10(totalDocuments / occurrenceCounts[i]). Values are
// computed once at construction and never change, so lookups are
// bit-identical for the lifetime of the run and the table is safe for
// concurrent readers.
type IDFTable struct {
	values []float64
}

// NewIDFTable computes the idf value for every index of counts. It must
// be called only after every document has been encoded; a zero occurrence
// count fails with ZeroDocumentFrequencyError because every vocabulary
// entry came from at least one document.
func NewIDFTable(totalDocuments int, counts *OccurrenceCounts) (*IDFTable, error) {
	if totalDocuments < 1 {
		return nil, fmt.Errorf("idf: total documents must be positive, got %d", totalDocuments)
	}
	values := make([]float64, counts.Len())
	for i := range values {
		n := counts.Count(i)
		if n < 1 {
			return nil, &ZeroDocumentFrequencyError{Index: i}
		}
		values[i] = math.Log10(float64(totalDocuments) / float64(n))
	}
	return &IDFTable{values: values}, nil
}

// Value returns the idf for vocabulary index i.
func (t *IDFTable) Value(i int) float64 {
	return t.values[i]
}

// Len returns the number of indices in the table.
func (t *IDFTable) Len() int {
	return len(t.values)
}
