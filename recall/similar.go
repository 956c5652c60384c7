package recall

import (
	"context"
	"sort"
	"sync"

	"github.com/rushteam/glowkit/core"
	"github.com/rushteam/glowkit/ingredient"
	"github.com/rushteam/glowkit/pipeline"
	"github.com/rushteam/glowkit/pkg/utils"
)

// IngredientSimilar 是基于成分的相似产品召回源（Content-Based Recommendation）。
//
// 核心思想：“成分构成相似的产品，功效也相似”。
// 对目录内所有可参与计算的产品做 TF-IDF 向量化，再用余弦相似度对
// 查询产品的候选集打分排序。
//
// 计算约定：
//   - 成分为空的产品不进入语料，也不作为候选
//   - 查询产品自身永远不出现在结果中
//   - 严格低于 MinScore 的候选被排除（先过滤，再排序，最后截断）
//   - 按分数降序排序；同分按产品 ID 升序，保证确定性
//
// IngredientSimilar 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type IngredientSimilar struct {
	Catalog *core.Catalog

	// corpus 与 vectors 在首次使用时构建一次；目录不可变，向量可安全复用
	once    sync.Once
	corpus  *ingredient.Corpus
	vectors map[string]map[string]float64
}

// NewIngredientSimilar 创建基于成分的召回源。
func NewIngredientSimilar(catalog *core.Catalog) *IngredientSimilar {
	return &IngredientSimilar{Catalog: catalog}
}

func (r *IngredientSimilar) Name() string        { return "recall.ingredient" }
func (r *IngredientSimilar) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *IngredientSimilar) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口，从 RecommendContext 读取查询参数。
func (r *IngredientSimilar) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil {
		return nil, core.NewInvalidParameter("recall: nil recommend context")
	}
	return r.Recommend(ctx, rctx.QueryProductID, rctx.TopN, rctx.MinScore)
}

// Recommend 返回与 queryID 最相似的 topN 个产品（按分数降序）。
//
// 错误语义：
//   - queryID 不在目录中：NOT_FOUND
//   - 目录中可参与计算的产品少于 2 个：EMPTY_CATALOG
//   - topN <= 0 或 minScore 不在 [0, 1]：INVALID_PARAMETER
//
// 纯函数语义：不修改目录，相同输入永远得到相同输出。
func (r *IngredientSimilar) Recommend(
	_ context.Context,
	queryID string,
	topN int,
	minScore float64,
) ([]*core.Item, error) {
	if topN <= 0 {
		return nil, core.NewInvalidParameter("recall: top_n must be positive")
	}
	if minScore < 0 || minScore > 1 {
		return nil, core.NewInvalidParameter("recall: min_score must be in [0, 1]")
	}

	query, ok := r.Catalog.Get(queryID)
	if !ok {
		return nil, core.NewProductNotFound(queryID)
	}
	if r.Catalog.EligibleCount() < 2 {
		return nil, core.NewEmptyCatalog(r.Catalog.EligibleCount())
	}

	r.once.Do(r.buildVectors)

	// 查询产品成分为空时向量为零范数，所有相似度按 0 处理
	queryVec := r.vectors[query.ID]

	type scored struct {
		id    string
		score float64
	}
	candidates := make([]scored, 0, r.Catalog.EligibleCount())

	// EligibleIDs 有序，保证遍历与输出确定性
	for _, id := range r.Catalog.EligibleIDs() {
		if id == queryID {
			continue
		}
		score := ingredient.Cosine(queryVec, r.vectors[id])
		if score < minScore {
			continue
		}
		candidates = append(candidates, scored{id: id, score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	out := make([]*core.Item, 0, len(candidates))
	for _, c := range candidates {
		p, _ := r.Catalog.Get(c.id)
		it := core.NewItemFromProduct(p)
		it.Score = c.score
		it.PutLabel("recall_source", utils.Label{Value: "ingredient", Source: "recall"})
		it.PutLabel("recall_metric", utils.Label{Value: "cosine_tfidf", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

// buildVectors 构建全目录的 TF-IDF 向量。目录不可变，只需构建一次。
func (r *IngredientSimilar) buildVectors() {
	ids := r.Catalog.EligibleIDs()
	docs := make([][]string, 0, len(ids))
	for _, id := range ids {
		p, _ := r.Catalog.Get(id)
		docs = append(docs, p.Ingredients)
	}
	r.corpus = ingredient.NewCorpus(docs)

	r.vectors = make(map[string]map[string]float64, len(ids))
	for _, id := range ids {
		p, _ := r.Catalog.Get(id)
		r.vectors[id] = r.corpus.Vectorize(p.Ingredients)
	}
}
