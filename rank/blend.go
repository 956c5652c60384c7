package rank

import (
	"context"
	"sort"

	"github.com/rushteam/glowkit/core"
	"github.com/rushteam/glowkit/pipeline"
	"github.com/rushteam/glowkit/pkg/utils"
)

// BlendNode 是一个线性混合排序 Node：把召回的相似度分数与评分先验混合。
// 成分几乎相同的两款产品，评分更高的应该排在前面。
//
//	score = w_sim * similarity + w_rating * rating/5
//
// 权重会归一化；评分来自 item.Meta["rating"]（数据集为 5 分制），
// 缺失评分的产品按评分 0 处理。
// - 写入 labels：rank_model
// - 更新 item.Score 并按分数降序稳定排序
type BlendNode struct {
	// SimilarityWeight 相似度权重；两者都为 0 时使用默认 0.8 / 0.2
	SimilarityWeight float64

	// RatingWeight 评分先验权重
	RatingWeight float64
}

func (n *BlendNode) Name() string        { return "rank.blend" }
func (n *BlendNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *BlendNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	wSim, wRating := n.SimilarityWeight, n.RatingWeight
	if wSim <= 0 && wRating <= 0 {
		wSim, wRating = 0.8, 0.2
	}
	total := wSim + wRating
	wSim /= total
	wRating /= total

	for _, it := range items {
		if it == nil {
			continue
		}
		rating, _ := it.MetaFloat64("rating")
		it.Score = wSim*it.Score + wRating*(rating/5)
		it.PutLabel("rank_model", utils.Label{Value: "blend", Source: "rank"})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}
