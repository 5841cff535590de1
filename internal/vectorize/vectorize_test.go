package vectorize

import (
	"math"
	"reflect"
	"testing"
)

func TestFit_StopWordsAndShortTokensDropped(t *testing.T) {
	m := Fit([]string{"the quick brown fox is a fast animal"}, Options{NgramMax: 1})

	for _, banned := range []string{"the", "is", "a"} {
		if _, ok := m.vocab[banned]; ok {
			t.Errorf("expected %q to be excluded from vocabulary", banned)
		}
	}
	for _, want := range []string{"quick", "brown", "fox", "fast", "animal"} {
		if _, ok := m.vocab[want]; !ok {
			t.Errorf("expected %q in vocabulary", want)
		}
	}
}

func TestFit_Bigrams(t *testing.T) {
	m := Fit([]string{"machine learning improves machine translation"}, Options{NgramMax: 2})

	if _, ok := m.vocab["machine learning"]; !ok {
		t.Error("expected bigram 'machine learning' in vocabulary")
	}
	if _, ok := m.vocab["machine"]; !ok {
		t.Error("expected unigram 'machine' in vocabulary")
	}
}

func TestFit_MaxFeaturesCap(t *testing.T) {
	texts := []string{
		"alpha alpha alpha beta beta gamma delta epsilon",
	}
	m := Fit(texts, Options{MaxFeatures: 3, NgramMax: 1})

	if m.Dims() != 3 {
		t.Fatalf("expected 3 features, got %d", m.Dims())
	}
	// Most frequent term must survive the cap.
	if _, ok := m.vocab["alpha"]; !ok {
		t.Error("expected most frequent term 'alpha' to survive feature cap")
	}
}

func TestVectors_L2Normalized(t *testing.T) {
	m := Fit([]string{
		"storage engine compaction merges sorted runs",
		"network transport retries failed requests",
	}, Options{NgramMax: 2})

	for i, v := range m.Vectors() {
		var norm float64
		for _, w := range v {
			norm += w * w
		}
		if math.Abs(math.Sqrt(norm)-1) > 1e-9 {
			t.Errorf("vector %d not unit length: %v", i, math.Sqrt(norm))
		}
	}
}

func TestCosine(t *testing.T) {
	m := Fit([]string{
		"databases store structured records",
		"databases store structured records",
		"violins produce musical sound",
	}, Options{NgramMax: 2})
	vs := m.Vectors()

	if sim := Cosine(vs[0], vs[1]); math.Abs(sim-1) > 1e-9 {
		t.Errorf("identical texts: expected cosine 1, got %v", sim)
	}
	if sim := Cosine(vs[0], vs[2]); sim != 0 {
		t.Errorf("disjoint texts: expected cosine 0, got %v", sim)
	}
}

func TestTransform_OutOfVocabulary(t *testing.T) {
	m := Fit([]string{"kernel scheduling latency"}, Options{NgramMax: 2})

	v := m.Transform("gardening tulips springtime")
	if len(v) != 0 {
		t.Errorf("expected empty vector for out-of-vocabulary text, got %v", v)
	}
}

func TestFitDeterministic(t *testing.T) {
	texts := []string{
		"storage engine compaction merges sorted runs into larger files",
		"network transport retries failed requests with exponential backoff",
		"storage compaction reduces read amplification across sorted files",
	}

	first := Fit(texts, Options{MaxFeatures: 50, NgramMax: 2})
	for run := 0; run < 20; run++ {
		again := Fit(texts, Options{MaxFeatures: 50, NgramMax: 2})
		if !reflect.DeepEqual(first.Vectors(), again.Vectors()) {
			t.Fatalf("fitted vectors differ on run %d", run)
		}
		if !reflect.DeepEqual(first.Terms(), again.Terms()) {
			t.Fatalf("vocabulary differs on run %d", run)
		}
	}
}

func TestCosineDeterministic(t *testing.T) {
	m := Fit([]string{
		"alpha beta gamma delta epsilon zeta eta theta iota kappa",
		"alpha gamma epsilon eta iota lambda sigma omega",
	}, Options{NgramMax: 2})
	vs := m.Vectors()
	q := m.Transform("alpha epsilon iota omega gamma")

	// Dot products over sparse vectors must sum in a fixed order, so the
	// exact float result never varies between calls.
	first := Cosine(vs[0], q)
	second := Cosine(vs[1], q)
	for run := 0; run < 100; run++ {
		if got := Cosine(vs[0], q); got != first {
			t.Fatalf("cosine drifted on run %d: %v vs %v", run, got, first)
		}
		if got := Cosine(vs[1], q); got != second {
			t.Fatalf("cosine drifted on run %d: %v vs %v", run, got, second)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"lowercases", "Hello WORLD", []string{"hello", "world"}},
		{"drops single chars", "a b cd", []string{"cd"}},
		{"splits on punctuation", "foo,bar;baz", []string{"foo", "bar", "baz"}},
		{"keeps digits and underscores", "user_id 42abc", []string{"user_id", "42abc"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestNgrams(t *testing.T) {
	got := ngrams([]string{"red", "green", "blue"}, 2)
	want := []string{"red", "green", "blue", "red green", "green blue"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("ngram %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
