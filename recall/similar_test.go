package recall

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/glowkit/core"
)

func testCatalog(t *testing.T, products []*core.Product) *core.Catalog {
	t.Helper()
	catalog, err := core.NewCatalog(products)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return catalog
}

func abcCatalog(t *testing.T) *core.Catalog {
	return testCatalog(t, []*core.Product{
		{ID: "A", Name: "Hydra Cream", Ingredients: []string{"water", "glycerin"}},
		{ID: "B", Name: "Aqua Gel", Ingredients: []string{"water", "glycerin"}},
		{ID: "C", Name: "Toner X", Ingredients: []string{"alcohol"}},
	})
}

func TestIngredientSimilar_Recommend(t *testing.T) {
	r := NewIngredientSimilar(abcCatalog(t))

	items, err := r.Recommend(context.Background(), "A", 2, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID != "B" || items[1].ID != "C" {
		t.Fatalf("order = [%s %s], want [B C]", items[0].ID, items[1].ID)
	}
	if items[0].Score != 1.0 {
		t.Errorf("score(B) = %v, want 1.0", items[0].Score)
	}
	if items[1].Score != 0.0 {
		t.Errorf("score(C) = %v, want 0.0", items[1].Score)
	}
}

func TestIngredientSimilar_ExcludesQuery(t *testing.T) {
	catalog := abcCatalog(t)
	r := NewIngredientSimilar(catalog)

	for _, queryID := range catalog.IDs() {
		items, err := r.Recommend(context.Background(), queryID, 10, 0)
		if err != nil {
			t.Fatalf("Recommend(%s) error = %v", queryID, err)
		}
		for _, it := range items {
			if it.ID == queryID {
				t.Errorf("Recommend(%s) returned the query product itself", queryID)
			}
		}
	}
}

func TestIngredientSimilar_ScoresSortedAndInRange(t *testing.T) {
	catalog := testCatalog(t, []*core.Product{
		{ID: "p1", Ingredients: []string{"water", "glycerin", "niacinamide"}},
		{ID: "p2", Ingredients: []string{"water", "glycerin"}},
		{ID: "p3", Ingredients: []string{"water", "alcohol"}},
		{ID: "p4", Ingredients: []string{"shea butter", "squalane"}},
		{ID: "p5", Ingredients: []string{"niacinamide", "zinc"}},
	})
	r := NewIngredientSimilar(catalog)

	items, err := r.Recommend(context.Background(), "p1", 10, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("len(items) = %d, want 4", len(items))
	}

	for i, it := range items {
		if it.Score < 0 || it.Score > 1 {
			t.Errorf("score(%s) = %v, out of [0, 1]", it.ID, it.Score)
		}
		if i > 0 && items[i-1].Score < it.Score {
			t.Errorf("scores not non-increasing: %v before %v", items[i-1].Score, it.Score)
		}
	}
}

func TestIngredientSimilar_Deterministic(t *testing.T) {
	catalog := testCatalog(t, []*core.Product{
		{ID: "p1", Ingredients: []string{"water", "glycerin"}},
		{ID: "p2", Ingredients: []string{"water", "glycerin"}}, // 与 p3 同分，按 ID 升序
		{ID: "p3", Ingredients: []string{"water", "glycerin"}},
		{ID: "p4", Ingredients: []string{"alcohol"}},
	})
	r := NewIngredientSimilar(catalog)

	first, err := r.Recommend(context.Background(), "p1", 3, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	gotIDs := make([]string, 0, len(first))
	for _, it := range first {
		gotIDs = append(gotIDs, it.ID)
	}
	if want := []string{"p2", "p3", "p4"}; !reflect.DeepEqual(gotIDs, want) {
		t.Fatalf("ids = %v, want %v", gotIDs, want)
	}

	for i := 0; i < 5; i++ {
		again, err := r.Recommend(context.Background(), "p1", 3, 0)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: len = %d, want %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].ID != first[j].ID || again[j].Score != first[j].Score {
				t.Fatalf("run %d: result differs at %d: (%s, %v) vs (%s, %v)",
					i, j, again[j].ID, again[j].Score, first[j].ID, first[j].Score)
			}
		}
	}
}

func TestIngredientSimilar_MinScoreOne(t *testing.T) {
	r := NewIngredientSimilar(abcCatalog(t))

	items, err := r.Recommend(context.Background(), "A", 10, 1.0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "B" {
		t.Fatalf("items = %v, want only B", items)
	}
	if items[0].Score != 1.0 {
		t.Errorf("score(B) = %v, want exactly 1.0", items[0].Score)
	}
}

func TestIngredientSimilar_MinScoreExcludesStrictlyBelow(t *testing.T) {
	r := NewIngredientSimilar(abcCatalog(t))

	// C 与 A 相似度为 0，严格低于 0.1 被排除；B 保留
	items, err := r.Recommend(context.Background(), "A", 10, 0.1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "B" {
		t.Fatalf("items len = %d, want only B above threshold", len(items))
	}
}

func TestIngredientSimilar_TopNExceedsCandidates(t *testing.T) {
	r := NewIngredientSimilar(abcCatalog(t))

	items, err := r.Recommend(context.Background(), "A", 100, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len(items) = %d, want all 2 candidates", len(items))
	}
}

func TestIngredientSimilar_Errors(t *testing.T) {
	tests := []struct {
		name     string
		products []*core.Product
		queryID  string
		topN     int
		minScore float64
		check    func(error) bool
		errName  string
	}{
		{
			name: "query id absent",
			products: []*core.Product{
				{ID: "A", Ingredients: []string{"water"}},
				{ID: "B", Ingredients: []string{"water"}},
			},
			queryID: "missing_id", topN: 5, minScore: 0,
			check: core.IsNotFound, errName: "NOT_FOUND",
		},
		{
			name: "single product catalog",
			products: []*core.Product{
				{ID: "A", Ingredients: []string{"water"}},
			},
			queryID: "A", topN: 5, minScore: 0,
			check: core.IsEmptyCatalog, errName: "EMPTY_CATALOG",
		},
		{
			name: "only one eligible product",
			products: []*core.Product{
				{ID: "A", Ingredients: []string{"water"}},
				{ID: "B"}, // 成分为空，不参与计算
			},
			queryID: "A", topN: 5, minScore: 0,
			check: core.IsEmptyCatalog, errName: "EMPTY_CATALOG",
		},
		{
			name: "non-positive top_n",
			products: []*core.Product{
				{ID: "A", Ingredients: []string{"water"}},
				{ID: "B", Ingredients: []string{"water"}},
			},
			queryID: "A", topN: 0, minScore: 0,
			check: core.IsInvalidParameter, errName: "INVALID_PARAMETER",
		},
		{
			name: "min_score above range",
			products: []*core.Product{
				{ID: "A", Ingredients: []string{"water"}},
				{ID: "B", Ingredients: []string{"water"}},
			},
			queryID: "A", topN: 5, minScore: 1.5,
			check: core.IsInvalidParameter, errName: "INVALID_PARAMETER",
		},
		{
			name: "min_score below range",
			products: []*core.Product{
				{ID: "A", Ingredients: []string{"water"}},
				{ID: "B", Ingredients: []string{"water"}},
			},
			queryID: "A", topN: 5, minScore: -0.1,
			check: core.IsInvalidParameter, errName: "INVALID_PARAMETER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewIngredientSimilar(testCatalog(t, tt.products))
			_, err := r.Recommend(context.Background(), tt.queryID, tt.topN, tt.minScore)
			if err == nil {
				t.Fatal("Recommend() error = nil, want error")
			}
			if !tt.check(err) {
				t.Errorf("error = %v, want %s", err, tt.errName)
			}
		})
	}
}

func TestIngredientSimilar_QueryWithoutIngredients(t *testing.T) {
	// 查询产品成分为空：零范数向量，对所有候选相似度为 0
	catalog := testCatalog(t, []*core.Product{
		{ID: "A"},
		{ID: "B", Ingredients: []string{"water"}},
		{ID: "C", Ingredients: []string{"alcohol"}},
	})
	r := NewIngredientSimilar(catalog)

	items, err := r.Recommend(context.Background(), "A", 10, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	for _, it := range items {
		if it.Score != 0 {
			t.Errorf("score(%s) = %v, want 0", it.ID, it.Score)
		}
	}
}

func TestIngredientSimilar_RecallFromContext(t *testing.T) {
	r := NewIngredientSimilar(abcCatalog(t))

	rctx := &core.RecommendContext{QueryProductID: "A", TopN: 1, MinScore: 0}
	items, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "B" {
		t.Fatalf("items = %v, want [B]", items)
	}

	if lbl, ok := items[0].Labels["recall_source"]; !ok || lbl.Value != "ingredient" {
		t.Errorf("recall_source label = %+v, want ingredient", lbl)
	}
}
