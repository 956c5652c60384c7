package glowkit

import (
	"context"
	"testing"

	"github.com/rushteam/glowkit/core"
	"github.com/rushteam/glowkit/filter"
	"github.com/rushteam/glowkit/rerank"
)

func testCatalog(t *testing.T) *core.Catalog {
	t.Helper()
	catalog, err := core.NewCatalog([]*core.Product{
		{ID: "q", Name: "Query Cream", Brand: "Cerave", Category: "moisturizer",
			Ingredients: []string{"water", "glycerin", "ceramide"}},
		{ID: "twin", Name: "Twin Cream", Brand: "Cerave", Category: "moisturizer",
			Ingredients: []string{"water", "glycerin", "ceramide"}},
		{ID: "near", Name: "Near Gel", Brand: "Vichy", Category: "moisturizer",
			Ingredients: []string{"water", "glycerin"}},
		{ID: "far", Name: "Toner", Brand: "Pixi", Category: "toner",
			Ingredients: []string{"alcohol", "witch hazel"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return catalog
}

func TestRecommender_Recommend(t *testing.T) {
	r := New(testCatalog(t))

	items, err := r.Recommend(context.Background(), "q", 10, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	// 成分完全相同的产品排第一且得分为 1
	if items[0].ID != "twin" || items[0].Score != 1.0 {
		t.Errorf("items[0] = %s(%v), want twin(1.0)", items[0].ID, items[0].Score)
	}
	for i := 1; i < len(items); i++ {
		if items[i].Score > items[i-1].Score {
			t.Errorf("scores not descending at %d: %v > %v", i, items[i].Score, items[i-1].Score)
		}
	}
	for _, it := range items {
		if it.ID == "q" {
			t.Error("query product must not appear in results")
		}
	}
}

func TestRecommender_Errors(t *testing.T) {
	r := New(testCatalog(t))
	ctx := context.Background()

	if _, err := r.Recommend(ctx, "missing", 5, 0); !core.IsNotFound(err) {
		t.Errorf("missing query error = %v, want NOT_FOUND", err)
	}
	if _, err := r.Recommend(ctx, "q", 0, 0); !core.IsInvalidParameter(err) {
		t.Errorf("top_n=0 error = %v, want INVALID_PARAMETER", err)
	}
	if _, err := r.Recommend(ctx, "q", 5, 1.5); !core.IsInvalidParameter(err) {
		t.Errorf("min_score=1.5 error = %v, want INVALID_PARAMETER", err)
	}
}

func TestRecommender_WithNodes(t *testing.T) {
	catalog := testCatalog(t)
	// 原始推荐器行为：只推同类型产品，取前 5，阈值 0.1
	r := New(catalog, WithNodes(
		&filter.FilterNode{Filters: []filter.Filter{
			&filter.CategoryFilter{Catalog: catalog, SameAsQuery: true},
		}},
		&rerank.TopNNode{},
	))

	items, err := r.Recommend(context.Background(), "q", 5, 0.1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	for _, it := range items {
		if it.ID == "far" {
			t.Error("cross-category product should be filtered out")
		}
	}
	if len(items) != 2 || items[0].ID != "twin" {
		t.Fatalf("items = %v, want [twin near]", ids(items))
	}
}

func TestRecommender_WithNodes_TruncatesAfterFilter(t *testing.T) {
	catalog := testCatalog(t)
	r := New(catalog, WithNodes(
		&filter.FilterNode{Filters: []filter.Filter{
			&filter.CategoryFilter{Catalog: catalog, SameAsQuery: true},
		}},
	))

	// top_n=1：先过滤再截断，留下的必须是同类型里得分最高的
	items, err := r.Recommend(context.Background(), "q", 1, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "twin" {
		t.Fatalf("items = %v, want [twin]", ids(items))
	}
}

func ids(items []*core.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
