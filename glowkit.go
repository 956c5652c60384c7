package glowkit

import (
	"context"

	"github.com/rushteam/glowkit/core"
	"github.com/rushteam/glowkit/pipeline"
	"github.com/rushteam/glowkit/recall"
)

// Recommender 把一个不可变目录与一条推荐链路绑定在一起。
// 零配置时等价于纯相似成分推荐：recommend(catalog, query_id, top_n, min_score)。
//
// 目录在构建后只读，Recommender 可在并发请求间安全共享。
type Recommender struct {
	catalog *core.Catalog
	similar *recall.IngredientSimilar

	// extra 是召回之后追加执行的 Node（过滤/排序/重排/特征注入）
	extra []pipeline.Node
}

// Option 配置 Recommender。
type Option func(*Recommender)

// WithNodes 在召回之后追加 Node，按顺序执行。
func WithNodes(nodes ...pipeline.Node) Option {
	return func(r *Recommender) {
		r.extra = append(r.extra, nodes...)
	}
}

// New 创建绑定目录的 Recommender。
func New(catalog *core.Catalog, opts ...Option) *Recommender {
	r := &Recommender{
		catalog: catalog,
		similar: recall.NewIngredientSimilar(catalog),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog 返回绑定的目录。
func (r *Recommender) Catalog() *core.Catalog {
	return r.catalog
}

// Recommend 返回与 queryID 最相似的 topN 个产品。
//
// 错误语义与 recall.IngredientSimilar.Recommend 一致：
// NOT_FOUND / EMPTY_CATALOG / INVALID_PARAMETER（见 core 包的 IsXXX 检查函数）。
func (r *Recommender) Recommend(
	ctx context.Context,
	queryID string,
	topN int,
	minScore float64,
) ([]*core.Item, error) {
	if topN <= 0 {
		return nil, core.NewInvalidParameter("recall: top_n must be positive")
	}
	if len(r.extra) == 0 {
		return r.similar.Recommend(ctx, queryID, topN, minScore)
	}

	// 追加了过滤/重排节点时先取全量候选，截断放到链路末尾，
	// 保证“过滤 → 排序 → 截断”的顺序不被提前截断破坏
	fetchN := r.catalog.EligibleCount()
	if fetchN < topN {
		fetchN = topN
	}
	items, err := r.similar.Recommend(ctx, queryID, fetchN, minScore)
	if err != nil {
		return nil, err
	}

	rctx := &core.RecommendContext{
		QueryProductID: queryID,
		TopN:           topN,
		MinScore:       minScore,
	}
	p := &pipeline.Pipeline{Nodes: r.extra}
	items, err = p.Run(ctx, rctx, items)
	if err != nil {
		return nil, err
	}
	if len(items) > topN {
		items = items[:topN]
	}
	return items, nil
}
