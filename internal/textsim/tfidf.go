// Package textsim provides the TF-IDF text similarity used by the
// content scorer and the feature extractor. A Vectorizer is fitted
// fresh for every scoring call, so each call is self-consistent; batch
// callers should group work by job set to avoid refitting.
package textsim

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const maxVocabulary = 5000

// englishStopWords filters common words that add noise to matching.
var englishStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "but": true, "by": true, "can": true, "do": true,
	"for": true, "from": true, "had": true, "has": true, "have": true,
	"he": true, "her": true, "his": true, "how": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "more": true,
	"not": true, "of": true, "on": true, "or": true, "our": true, "she": true,
	"so": true, "such": true, "than": true, "that": true, "the": true,
	"their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "to": true, "was": true, "we": true,
	"were": true, "what": true, "when": true, "which": true, "who": true,
	"will": true, "with": true, "would": true, "you": true, "your": true,
}

// SparseVector is an l2-normalized tf-idf document row.
type SparseVector map[int]float64

// Vectorizer fits a unigram+bigram tf-idf model over one corpus.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// tokenize lowercases and splits text, keeping tech tokens like "c++",
// "c#" and "node.js" intact, and drops stop words.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len(w) >= 2 && !englishStopWords[w] {
			tokens = append(tokens, w)
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// terms expands a document into unigrams and bigrams.
func terms(text string) []string {
	unigrams := tokenize(text)
	out := make([]string, 0, len(unigrams)*2)
	out = append(out, unigrams...)
	for i := 0; i+1 < len(unigrams); i++ {
		out = append(out, unigrams[i]+" "+unigrams[i+1])
	}
	return out
}

// NewVectorizer fits the vocabulary (capped at 5000 terms by document
// frequency) and idf weights over the given corpus.
func NewVectorizer(docs []string) *Vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range terms(doc) {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	type termDF struct {
		term string
		df   int
	}
	ranked := make([]termDF, 0, len(df))
	for t, n := range df {
		ranked = append(ranked, termDF{t, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].df != ranked[j].df {
			return ranked[i].df > ranked[j].df
		}
		return ranked[i].term < ranked[j].term
	})
	if len(ranked) > maxVocabulary {
		ranked = ranked[:maxVocabulary]
	}

	v := &Vectorizer{vocabulary: make(map[string]int, len(ranked))}
	v.idf = make([]float64, len(ranked))
	n := float64(len(docs))
	for i, td := range ranked {
		v.vocabulary[td.term] = i
		// Smoothed idf keeps terms present in every document non-zero.
		v.idf[i] = math.Log((1+n)/(1+float64(td.df))) + 1
	}
	return v
}

// Transform maps a document to its l2-normalized tf-idf row.
func (v *Vectorizer) Transform(doc string) SparseVector {
	counts := make(map[int]float64)
	for _, term := range terms(doc) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx := range counts {
		counts[idx] *= v.idf[idx]
		norm += counts[idx] * counts[idx]
	}
	if norm == 0 {
		return counts
	}
	norm = math.Sqrt(norm)
	for idx := range counts {
		counts[idx] /= norm
	}
	return counts
}

// Cosine returns the cosine similarity of two rows. Rows coming out of
// Transform are normalized, so this is a plain dot product with a
// guard for empty documents.
func Cosine(a, b SparseVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, av := range a {
		if bv, ok := b[idx]; ok {
			dot += av * bv
		}
	}
	return dot
}

// Similarity is the one-shot form: fit on the pair, compare the pair.
// Used where a single (candidate, job) similarity is needed without a
// surrounding corpus.
func Similarity(docA, docB string) float64 {
	if strings.TrimSpace(docA) == "" || strings.TrimSpace(docB) == "" {
		return 0.0
	}
	v := NewVectorizer([]string{docA, docB})
	return Cosine(v.Transform(docA), v.Transform(docB))
}
