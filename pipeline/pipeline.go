package pipeline

import (
	"context"

	"github.com/rushteam/glowkit/core"
)

// Pipeline 是 GlowKit 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 典型链路：召回（相似成分）→ 过滤（同类型/规则）→ 排序 → 重排（TopN/品牌去重）。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
