package filter

import (
	"context"

	"github.com/rushteam/glowkit/core"
	"github.com/rushteam/glowkit/pkg/dsl"
)

// RuleFilter 是规则驱动的过滤器：用 CEL 表达式描述“保留条件”。
// 表达式求值为 false 的产品被过滤。
//
// 示例：
//   - "item.meta.price < 50.0"                     只推 50 元以内
//   - "item.meta.rating >= 4.0"                    只推高分产品
//   - "label.recall_source.contains(\"ingredient\")" 只保留成分召回的结果
type RuleFilter struct {
	// Expr 是 CEL 表达式，描述保留条件；空表达式不过滤任何产品
	Expr string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}

	eval, err := dsl.NewEval(item, rctx)
	if err != nil {
		return false, err
	}
	keep, err := eval.Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
