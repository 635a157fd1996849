// Package pipeline runs the corpus-to-clusters flow: tokenize, build the
// vocabulary, encode term frequencies, compute idf values, assemble the
// tf-idf vectors, and hand them to k-means. Encoding and assembly run in
// two phases separated by a hard barrier: every document is encoded (and
// has contributed to the document-frequency counts) before any idf value
// is computed.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"corral/pkg/corpus"
	"corral/pkg/kmeans"
	"corral/pkg/text"
	"corral/pkg/tfidf"
)

// DefaultTopTerms is the number of centroid terms reported per cluster
// when Params.TopTerms is zero.
const DefaultTopTerms = 8

// Options configures vectorization. The zero value is usable.
type Options struct {
	// Tokenize splits a document body into tokens. Nil means text.Tokenize.
	Tokenize func(string) []string
	// Workers bounds encode/assemble parallelism. Non-positive means
	// one worker per available CPU.
	Workers int
}

// Params configures a full clustering run.
type Params struct {
	Options
	K             int
	Seed          int64
	MaxIterations int
	TopTerms      int
}

// Skipped records a document that was dropped from the run.
type Skipped struct {
	Pos    int    // position in the input corpus
	ID     string // loader document id
	Reason string
}

// Vectors is the outcome of vectorization: one tf-idf vector per retained
// document, all of vocabulary width, in corpus order.
type Vectors struct {
	Vocab   *tfidf.Vocabulary
	Counts  *tfidf.OccurrenceCounts // final document frequencies
	Vectors [][]float64
	Docs    []corpus.Document // retained documents, parallel to Vectors
	Skipped []Skipped
}

// ClusterSummary is the reporting view of one cluster.
type ClusterSummary struct {
	Label    int
	Members  []corpus.Document
	TopTerms []Term
}

// ClusterRun is the outcome of a full run: the vectorization, the raw
// k-means result (Labels parallel to Vectors.Docs), and the per-cluster
// summaries.
type ClusterRun struct {
	Vectors  *Vectors
	KMeans   *kmeans.Result
	Clusters []ClusterSummary
}

// Vectorize converts documents to tf-idf vectors. Documents whose body
// yields no tokens are skipped and reported in the result; any other
// encoding failure aborts the run. Cancellation is honored between
// documents and between phases, never mid-document.
func Vectorize(ctx context.Context, docs []corpus.Document, opts Options) (*Vectors, error) {
	tokenize := opts.Tokenize
	if tokenize == nil {
		tokenize = text.Tokenize
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	tokenized := make([][]string, len(docs))
	for i, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tokenized[i] = tokenize(d.Body)
	}

	vocab, err := tfidf.Build(tokenized)
	if err != nil {
		return nil, fmt.Errorf("build vocabulary: %w", err)
	}

	// Phase 1: encode every document, merging each document's distinct
	// token indices into the shared occurrence counter.
	counts := tfidf.NewOccurrenceCounts(vocab.Size())
	tfVecs := make([][]float64, len(docs))
	encErrs := make([]error, len(docs))
	if err := forEach(ctx, len(docs), workers, func(i int) {
		tfVecs[i], encErrs[i] = tfidf.Encode(tokenized[i], vocab, counts)
	}); err != nil {
		return nil, err
	}

	out := &Vectors{Vocab: vocab, Counts: counts}
	for i, encErr := range encErrs {
		var emptyDoc *tfidf.EmptyDocumentError
		switch {
		case encErr == nil:
			out.Docs = append(out.Docs, docs[i])
			out.Vectors = append(out.Vectors, tfVecs[i])
		case errors.As(encErr, &emptyDoc):
			out.Skipped = append(out.Skipped, Skipped{Pos: i, ID: docs[i].ID, Reason: encErr.Error()})
		default:
			return nil, fmt.Errorf("encode document %s: %w", docs[i].ID, encErr)
		}
	}

	// Barrier: every document above has been encoded, so the occurrence
	// counts are final. Documents skipped as empty contributed nothing
	// and are excluded from the document total.
	idf, err := tfidf.NewIDFTable(len(out.Vectors), counts)
	if err != nil {
		return nil, fmt.Errorf("compute idf: %w", err)
	}

	// Phase 2: weight each retained vector. Pure per-document work.
	if err := forEach(ctx, len(out.Vectors), workers, func(i int) {
		out.Vectors[i] = tfidf.Assemble(out.Vectors[i], idf)
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Cluster runs Vectorize and partitions the resulting vectors into K
// groups, producing per-cluster member lists and top centroid terms.
func Cluster(ctx context.Context, docs []corpus.Document, p Params) (*ClusterRun, error) {
	vecs, err := Vectorize(ctx, docs, p.Options)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	km, err := kmeans.Run(vecs.Vectors, p.K, kmeans.Options{
		Seed:          p.Seed,
		MaxIterations: p.MaxIterations,
	})
	if err != nil {
		return nil, fmt.Errorf("cluster vectors: %w", err)
	}

	topN := p.TopTerms
	if topN <= 0 {
		topN = DefaultTopTerms
	}
	run := &ClusterRun{Vectors: vecs, KMeans: km}
	for label := 0; label < p.K; label++ {
		summary := ClusterSummary{
			Label:    label,
			TopTerms: TopTerms(km.Centroids[label], vecs.Vocab, topN),
		}
		for i, l := range km.Labels {
			if l == label {
				summary.Members = append(summary.Members, vecs.Docs[i])
			}
		}
		run.Clusters = append(run.Clusters, summary)
	}
	return run, nil
}

// forEach runs fn(i) for every i in [0, n) across a bounded worker pool.
// It stops handing out work once ctx is canceled and reports the context
// error after in-flight calls finish.
func forEach(ctx context.Context, n, workers int, fn func(int)) error {
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	var err error
send:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break send
		}
	}
	close(jobs)
	wg.Wait()
	return err
}
