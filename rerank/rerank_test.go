package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/glowkit/core"
)

func scoredItem(id string, score float64, brand string) *core.Item {
	it := core.NewItem(id)
	it.Score = score
	if brand != "" {
		it.Meta["brand"] = brand
	}
	return it
}

func TestTopNNode(t *testing.T) {
	items := []*core.Item{
		scoredItem("p1", 0.9, ""),
		scoredItem("p2", 0.8, ""),
		scoredItem("p3", 0.7, ""),
	}

	tests := []struct {
		name    string
		n       int
		rctx    *core.RecommendContext
		wantLen int
	}{
		{name: "truncate", n: 2, wantLen: 2},
		{name: "n exceeds items", n: 10, wantLen: 3},
		{name: "n from context", n: 0, rctx: &core.RecommendContext{TopN: 1}, wantLen: 1},
		{name: "no limit", n: 0, wantLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), tt.rctx, items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.wantLen {
				t.Errorf("len(out) = %d, want %d", len(out), tt.wantLen)
			}
			// 截断保序
			for i := range out {
				if out[i].ID != items[i].ID {
					t.Errorf("out[%d] = %s, want %s", i, out[i].ID, items[i].ID)
				}
			}
		})
	}
}

func TestBrandDiversity(t *testing.T) {
	items := []*core.Item{
		scoredItem("p1", 0.9, "Cerave"),
		scoredItem("p2", 0.8, "Cerave"), // 超出品牌配额
		scoredItem("p3", 0.7, "The Ordinary"),
		scoredItem("p4", 0.6, ""), // 品牌缺失不受约束
	}

	node := &BrandDiversity{} // 默认每品牌 1 个
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := []string{"p1", "p3", "p4"}
	if len(out) != len(want) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(want))
	}
	for i, id := range want {
		if out[i].ID != id {
			t.Errorf("out[%d] = %s, want %s", i, out[i].ID, id)
		}
	}
}

func TestBrandDiversity_MaxPerBrand(t *testing.T) {
	items := []*core.Item{
		scoredItem("p1", 0.9, "Cerave"),
		scoredItem("p2", 0.8, "Cerave"),
		scoredItem("p3", 0.7, "Cerave"),
	}

	node := &BrandDiversity{MaxPerBrand: 2}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2", len(out))
	}
}
