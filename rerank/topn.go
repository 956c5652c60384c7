package rerank

import (
	"context"

	"github.com/rushteam/glowkit/core"
	"github.com/rushteam/glowkit/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个产品。
// 通常在排序（Rank）节点之后使用，用于限制返回结果数量。
//
// N <= 0 时以 rctx.TopN 为准；两者都未设置则不截断。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        recall.NewIngredientSimilar(catalog), // 召回 + 打分
//	        &rerank.TopNNode{N: 5},               // 截取 Top 5
//	    },
//	}
type TopNNode struct {
	// N 要保留的产品数量（Top N）
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.TopN
	}
	if limit <= 0 {
		return items, nil
	}

	if len(items) <= limit {
		return items, nil
	}

	return items[:limit], nil
}
