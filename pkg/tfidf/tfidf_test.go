package tfidf

import (
	"math"
	"testing"
)

func TestAssemble(t *testing.T) {
	docs := [][]string{{"the", "cat", "sat"}, {"the", "dog", "sat"}}
	vocab := buildVocab(t, docs)
	counts := NewOccurrenceCounts(vocab.Size())

	tf := make([][]float64, len(docs))
	for i, doc := range docs {
		var err error
		tf[i], err = Encode(doc, vocab, counts)
		if err != nil {
			t.Fatalf("Encode doc %d: %v", i, err)
		}
	}
	idf, err := NewIDFTable(len(docs), counts)
	if err != nil {
		t.Fatalf("NewIDFTable: %v", err)
	}

	got0 := Assemble(tf[0], idf)
	got1 := Assemble(tf[1], idf)

	l2 := math.Log10(2)
	want0 := []float64{0, l2, 0, 0.4 * l2}
	want1 := []float64{0, 0.4 * l2, 0, l2}
	for i := range want0 {
		if got0[i] != want0[i] {
			t.Errorf("tfidf0[%d] (%s) = %v, want %v", i, vocab.Token(i), got0[i], want0[i])
		}
		if got1[i] != want1[i] {
			t.Errorf("tfidf1[%d] (%s) = %v, want %v", i, vocab.Token(i), got1[i], want1[i])
		}
	}

	// Human check on the smoothed absent component: 0.4 * log10(2) ~ 0.1204.
	iDog, _ := vocab.Index("dog")
	if math.Abs(got0[iDog]-0.1204) > 0.0001 {
		t.Errorf("tfidf0[dog] = %v, want ~0.1204", got0[iDog])
	}
}

func TestAssemble_RepeatedTokenEqualsIDF(t *testing.T) {
	// A document of one repeated token has tf exactly 1.0 at that index,
	// so its tf-idf equals the idf value exactly.
	docs := [][]string{{"a", "a", "a"}, {"b"}}
	vocab := buildVocab(t, docs)
	counts := NewOccurrenceCounts(vocab.Size())

	tf0, err := Encode(docs[0], vocab, counts)
	if err != nil {
		t.Fatalf("Encode doc 0: %v", err)
	}
	if _, err := Encode(docs[1], vocab, counts); err != nil {
		t.Fatalf("Encode doc 1: %v", err)
	}
	idf, err := NewIDFTable(len(docs), counts)
	if err != nil {
		t.Fatalf("NewIDFTable: %v", err)
	}

	out := Assemble(tf0, idf)
	ia, _ := vocab.Index("a")
	if math.Float64bits(out[ia]) != math.Float64bits(idf.Value(ia)) {
		t.Errorf("tfidf[a] = %v, want idf[a] = %v exactly", out[ia], idf.Value(ia))
	}
}

func TestVectorize_Deterministic(t *testing.T) {
	docs := [][]string{
		{"stocks", "fell", "sharply", "today"},
		{"stocks", "rose", "today"},
		{"rain", "fell", "overnight"},
	}
	run := func() [][]float64 {
		vocab := buildVocab(t, docs)
		counts := NewOccurrenceCounts(vocab.Size())
		tf := make([][]float64, len(docs))
		for i, doc := range docs {
			var err error
			tf[i], err = Encode(doc, vocab, counts)
			if err != nil {
				t.Fatalf("Encode doc %d: %v", i, err)
			}
		}
		idf, err := NewIDFTable(len(docs), counts)
		if err != nil {
			t.Fatalf("NewIDFTable: %v", err)
		}
		out := make([][]float64, len(tf))
		for i := range tf {
			out[i] = Assemble(tf[i], idf)
		}
		return out
	}

	first := run()
	second := run()
	for d := range first {
		for i := range first[d] {
			if math.Float64bits(first[d][i]) != math.Float64bits(second[d][i]) {
				t.Errorf("vector[%d][%d] differs across runs: %v vs %v", d, i, first[d][i], second[d][i])
			}
		}
	}
}
