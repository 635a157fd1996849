package tfidf

import "fmt"

// EmptyCorpusError reports a corpus with no usable tokens. Building a
// vocabulary from such a corpus is undefined (every downstream division
// would be by zero), so the run cannot proceed.
type EmptyCorpusError struct {
	Docs int // number of documents inspected
}

func (e *EmptyCorpusError) Error() string {
	return fmt.Sprintf("empty corpus: no usable tokens in %d documents", e.Docs)
}

// EmptyDocumentError reports a document with zero countable tokens.
// The encoder refuses to fabricate a vector for it; callers skip the
// document and continue with the rest of the corpus.
type EmptyDocumentError struct{}

func (e *EmptyDocumentError) Error() string {
	return "empty document: no countable tokens"
}

// UnknownTokenError reports a token that is not in the vocabulary.
// It means the vocabulary was built from a different token set than the
// one being encoded, which is a sequencing bug, not a data problem.
type UnknownTokenError struct {
	Token string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("token %q not in vocabulary", e.Token)
}

// ZeroDocumentFrequencyError reports an idf request for an index with no
// recorded document occurrences. Every vocabulary entry comes from at
// least one document, so a zero count means the occurrence counter was
// populated from a different corpus or queried before all documents were
// encoded.
type ZeroDocumentFrequencyError struct {
	Index int
}

func (e *ZeroDocumentFrequencyError) Error() string {
	return fmt.Sprintf("zero document frequency for vocabulary index %d", e.Index)
}
