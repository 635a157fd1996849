package tfidf

import "sync"

// Smoothing is the additive term-frequency smoothing constant. Tokens
// absent from a document still receive this floor weight, which dampens
// the tf component's sensitivity to sparse counts.
const Smoothing = 0.4

// OccurrenceCounts tracks, per vocabulary index, the number of documents
// containing that token at least once (document frequency, not raw
// occurrence frequency). Documents contribute their distinct index sets
// under a lock, so encoding may run concurrently across documents. Reads
// are only meaningful after every document has contributed.
type OccurrenceCounts struct {
	mu     sync.Mutex
	counts []int
}

// NewOccurrenceCounts returns a counter for a vocabulary of the given size.
func NewOccurrenceCounts(size int) *OccurrenceCounts {
	return &OccurrenceCounts{counts: make([]int, size)}
}

// add merges one document's distinct index set into the counter. Each
// index in the set is incremented exactly once, regardless of how many
// times the token occurred within the document.
func (c *OccurrenceCounts) add(indices map[int]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range indices {
		c.counts[i]++
	}
}

// Count returns the number of documents containing vocabulary index i.
func (c *OccurrenceCounts) Count(i int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[i]
}

// Len returns the vocabulary size the counter was created for.
func (c *OccurrenceCounts) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.counts)
}

// Encode produces the double-normalized term-frequency vector for one
// document and merges the document's distinct token indices into counts.
//
// Every component is a + (1-a)*raw/maxRaw with a = Smoothing, so an index
// whose token is absent from the document holds exactly the smoothing
// floor and the index with the maximum raw count holds exactly 1.
//
// Encode fails with EmptyDocumentError when the document has no tokens
// (maxRaw would be undefined) and with UnknownTokenError when a token is
// missing from the vocabulary. On failure counts is left untouched.
func Encode(doc []string, vocab *Vocabulary, counts *OccurrenceCounts) ([]float64, error) {
	raw := make([]int, vocab.Size())
	seen := make(map[int]struct{}, len(doc))
	maxRaw := 0
	for _, tok := range doc {
		i, ok := vocab.Index(tok)
		if !ok {
			return nil, &UnknownTokenError{Token: tok}
		}
		raw[i]++
		if raw[i] > maxRaw {
			maxRaw = raw[i]
		}
		seen[i] = struct{}{}
	}
	if maxRaw == 0 {
		return nil, &EmptyDocumentError{}
	}
	counts.add(seen)

	tf := make([]float64, len(raw))
	for i, r := range raw {
		tf[i] = Smoothing + (1-Smoothing)*float64(r)/float64(maxRaw)
	}
	return tf, nil
}
