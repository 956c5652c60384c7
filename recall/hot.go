package recall

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/rushteam/glowkit/core"
	"github.com/rushteam/glowkit/pipeline"
	"github.com/rushteam/glowkit/pkg/utils"
)

// Hot 是热门召回源：返回评分最高的产品，作为冷查询/空结果时的兜底。
//   - 如果 Store 实现了 KeyValueStore，优先使用 ZRange（评分榜单有序集合）
//   - 否则从普通 key 读取 JSON 数组
//   - 如果 Store 为空，按 Catalog 中的产品评分排序作为 fallback
//
// Hot 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Hot struct {
	Store   core.Store
	Key     string // 榜单 key，例如 "hot:rating"
	Catalog *core.Catalog

	// TopK 返回的榜单长度；<=0 时默认 20
	TopK int
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	ids := r.idsFromStore(ctx, topK)
	if len(ids) == 0 {
		ids = r.idsFromCatalog(topK)
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		var it *core.Item
		if p, ok := r.Catalog.Get(id); ok {
			it = core.NewItemFromProduct(p)
			// 评分归一化到 [0, 1]（数据集评分为 5 分制）；
			// 目录可绕过 dataset 校验直接构建，越界评分在此钳制
			score := p.Rating / 5
			if score > 1 {
				score = 1
			}
			if score < 0 {
				score = 0
			}
			it.Score = score
		} else {
			it = core.NewItem(id)
		}
		it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

func (r *Hot) idsFromStore(ctx context.Context, topK int) []string {
	if r.Store == nil || r.Key == "" {
		return nil
	}
	if kvStore, ok := r.Store.(core.KeyValueStore); ok {
		members, err := kvStore.ZRange(ctx, r.Key, 0, int64(topK-1))
		if err == nil && len(members) > 0 {
			return members
		}
		return nil
	}
	data, err := r.Store.Get(ctx, r.Key)
	if err != nil {
		return nil
	}
	var parsed []string
	if json.Unmarshal(data, &parsed) != nil {
		return nil
	}
	if len(parsed) > topK {
		parsed = parsed[:topK]
	}
	return parsed
}

func (r *Hot) idsFromCatalog(topK int) []string {
	if r.Catalog == nil {
		return nil
	}
	ids := append([]string(nil), r.Catalog.IDs()...)
	sort.SliceStable(ids, func(i, j int) bool {
		pi, _ := r.Catalog.Get(ids[i])
		pj, _ := r.Catalog.Get(ids[j])
		if pi.Rating != pj.Rating {
			return pi.Rating > pj.Rating
		}
		return ids[i] < ids[j]
	})
	if len(ids) > topK {
		ids = ids[:topK]
	}
	return ids
}
