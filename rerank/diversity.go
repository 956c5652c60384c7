package rerank

import (
	"context"

	"github.com/rushteam/glowkit/core"
	"github.com/rushteam/glowkit/pipeline"
)

// BrandDiversity 是一个多样性 ReRank 节点：限制每个品牌出现的次数。
// 同一品牌的产品线成分高度相似，不加约束时 Top-N 很容易被单一品牌占满。
//
// 品牌来源优先级：
//   - label["brand"].Value
//   - meta["brand"] (string)
//
// 品牌缺失的产品不受约束。
type BrandDiversity struct {
	// MaxPerBrand 每个品牌最多保留的产品数；<=0 时默认 1
	MaxPerBrand int
}

func (n *BrandDiversity) Name() string {
	return "rerank.brand_diversity"
}

func (n *BrandDiversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *BrandDiversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	maxPerBrand := n.MaxPerBrand
	if maxPerBrand <= 0 {
		maxPerBrand = 1
	}

	counts := make(map[string]int, 32)
	out := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}

		brand := ""
		if it.Labels != nil {
			if lbl, ok := it.Labels["brand"]; ok {
				brand = lbl.Value
			}
		}
		if brand == "" {
			brand = it.MetaString("brand")
		}

		if brand == "" {
			out = append(out, it)
			continue
		}
		if counts[brand] >= maxPerBrand {
			continue
		}
		counts[brand]++
		out = append(out, it)
	}

	return out, nil
}
