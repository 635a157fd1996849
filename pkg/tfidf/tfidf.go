package tfidf

// Assemble multiplies a term-frequency vector component-wise by the idf
// table, producing the final feature vector for one document. No further
// normalization is applied; the raw product is the output. tf must have
// the table's length.
//
// Assemble is pure and touches no shared state, so once the idf table
// exists it may run for every document in parallel.
func Assemble(tf []float64, idf *IDFTable) []float64 {
	out := make([]float64, len(tf))
	for i, w := range tf {
		out[i] = w * idf.Value(i)
	}
	return out
}
