package filter

import (
	"context"

	"github.com/rushteam/glowkit/core"
)

// CategoryFilter 按产品类型过滤候选。
// 两种模式：
//   - SameAsQuery=true：只保留与查询产品同类型的候选（面霜只推面霜）
//   - Category 非空：只保留指定类型的候选
//
// 候选类型来源优先级：item.Meta["category"] > Catalog 查询。
type CategoryFilter struct {
	// Catalog 用于查询产品类型（item.Meta 缺失时兜底）
	Catalog *core.Catalog

	// SameAsQuery 为 true 时，以 rctx.QueryProductID 的类型为准
	SameAsQuery bool

	// Category 显式指定保留的产品类型（SameAsQuery 为 false 时生效）
	Category string
}

func (f *CategoryFilter) Name() string {
	return "filter.category"
}

func (f *CategoryFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	want := f.Category
	if f.SameAsQuery {
		if rctx == nil || rctx.QueryProductID == "" {
			return false, nil
		}
		query, ok := f.Catalog.Get(rctx.QueryProductID)
		if !ok {
			return false, nil
		}
		want = query.Category
	}
	if want == "" {
		return false, nil
	}

	got := item.MetaString("category")
	if got == "" && f.Catalog != nil {
		if p, ok := f.Catalog.Get(item.ID); ok {
			got = p.Category
		}
	}

	return got != want, nil
}
