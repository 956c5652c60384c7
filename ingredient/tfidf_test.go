package ingredient

import (
	"math"
	"testing"
)

func TestNewCorpus_DocFreq(t *testing.T) {
	c := NewCorpus([][]string{
		{"water", "glycerin", "water"}, // water 重复出现只计一次文档频率
		{"water", "alcohol"},
		{"niacinamide"},
	})

	if c.NumDocs() != 3 {
		t.Fatalf("NumDocs = %d, want 3", c.NumDocs())
	}

	tests := []struct {
		token string
		want  int
	}{
		{"water", 2},
		{"glycerin", 1},
		{"alcohol", 1},
		{"niacinamide", 1},
		{"unknown", 0},
	}
	for _, tt := range tests {
		if got := c.DocFreq(tt.token); got != tt.want {
			t.Errorf("DocFreq(%q) = %d, want %d", tt.token, got, tt.want)
		}
	}
}

func TestVectorize(t *testing.T) {
	c := NewCorpus([][]string{
		{"water", "glycerin"},
		{"water", "alcohol"},
	})

	vec := c.Vectorize([]string{"water", "glycerin"})
	if len(vec) != 2 {
		t.Fatalf("len(vec) = %d, want 2", len(vec))
	}

	// water 出现在所有文档中，权重应低于只出现一次的 glycerin
	if vec["water"] >= vec["glycerin"] {
		t.Errorf("common token weight %v should be below distinctive token weight %v",
			vec["water"], vec["glycerin"])
	}

	for tok, w := range vec {
		if w <= 0 {
			t.Errorf("weight of %q = %v, want > 0", tok, w)
		}
	}
}

func TestVectorize_Empty(t *testing.T) {
	c := NewCorpus([][]string{{"water"}})
	if vec := c.Vectorize(nil); len(vec) != 0 {
		t.Errorf("Vectorize(nil) = %v, want empty", vec)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		u    map[string]float64
		v    map[string]float64
		want float64
	}{
		{
			name: "identical vectors",
			u:    map[string]float64{"a": 0.3, "b": 0.7},
			v:    map[string]float64{"a": 0.3, "b": 0.7},
			want: 1,
		},
		{
			name: "proportional vectors",
			u:    map[string]float64{"a": 1, "b": 2},
			v:    map[string]float64{"a": 2, "b": 4},
			want: 1,
		},
		{
			name: "disjoint dimensions",
			u:    map[string]float64{"a": 1},
			v:    map[string]float64{"b": 1},
			want: 0,
		},
		{
			name: "zero norm left",
			u:    map[string]float64{},
			v:    map[string]float64{"a": 1},
			want: 0,
		},
		{
			name: "zero norm right",
			u:    map[string]float64{"a": 1},
			v:    nil,
			want: 0,
		},
		{
			name: "orthogonal-ish partial overlap",
			u:    map[string]float64{"a": 1, "b": 1},
			v:    map[string]float64{"b": 1, "c": 1},
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.u, tt.v)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Cosine() = %v, out of [0, 1]", got)
			}
		})
	}
}

func TestCosine_Symmetric(t *testing.T) {
	u := map[string]float64{"a": 0.2, "b": 0.5, "c": 0.1}
	v := map[string]float64{"b": 0.9, "c": 0.4, "d": 0.3}
	if Cosine(u, v) != Cosine(v, u) {
		t.Errorf("Cosine not symmetric: %v != %v", Cosine(u, v), Cosine(v, u))
	}
}

func TestCosine_IdenticalTFIDFVectors(t *testing.T) {
	// 相同成分序列向量化后必须精确得到 1（min_score=1.0 的过滤依赖此性质）
	c := NewCorpus([][]string{
		{"water", "glycerin"},
		{"water", "glycerin"},
		{"alcohol"},
	})
	u := c.Vectorize([]string{"water", "glycerin"})
	v := c.Vectorize([]string{"water", "glycerin"})
	if got := Cosine(u, v); got != 1 {
		t.Errorf("Cosine(identical) = %v, want exactly 1", got)
	}
}
