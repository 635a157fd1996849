// Package tfidf converts tokenized documents into dense TF-IDF feature
// vectors. Term frequencies are double-normalized (max-count normalization
// plus an additive smoothing floor) and inverse document frequencies are
// log10-scaled. The weighting is fixed; there is no stemming, stop-word
// removal, or post-weighting normalization.
package tfidf

// Vocabulary is a bijection between the distinct tokens of a corpus and
// dense integer indices [0, W). Indices are assigned in order of first
// appearance and never change afterwards; the zero value is not usable,
// construct with Build.
type Vocabulary struct {
	index map[string]int
	terms []string
	docs  int
}

// Build collects the distinct non-empty tokens across all documents and
// assigns each a stable index. It fails with EmptyCorpusError when the
// corpus has no documents or no usable tokens.
func Build(docs [][]string) (*Vocabulary, error) {
	v := &Vocabulary{
		index: make(map[string]int),
		docs:  len(docs),
	}
	for _, doc := range docs {
		for _, tok := range doc {
			if tok == "" {
				continue
			}
			if _, ok := v.index[tok]; !ok {
				v.index[tok] = len(v.terms)
				v.terms = append(v.terms, tok)
			}
		}
	}
	if len(v.terms) == 0 {
		return nil, &EmptyCorpusError{Docs: len(docs)}
	}
	return v, nil
}

// Size returns W, the number of distinct tokens.
func (v *Vocabulary) Size() int {
	return len(v.terms)
}

// DocCount returns the number of documents the vocabulary was built from.
func (v *Vocabulary) DocCount() int {
	return v.docs
}

// Index returns the index assigned to token, and whether the token is in
// the vocabulary.
func (v *Vocabulary) Index(token string) (int, bool) {
	i, ok := v.index[token]
	return i, ok
}

// Token returns the token assigned to index i. It panics when i is out of
// [0, W), mirroring slice indexing.
func (v *Vocabulary) Token(i int) string {
	return v.terms[i]
}

// Terms returns a copy of the token list in index order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}
