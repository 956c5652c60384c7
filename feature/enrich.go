// Package feature 提供候选产品的在线特征注入。
package feature

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/glowkit/core"
	"github.com/rushteam/glowkit/feast"
	"github.com/rushteam/glowkit/pipeline"
	"github.com/rushteam/glowkit/pkg/conv"
	"github.com/rushteam/glowkit/pkg/utils"
)

// EnrichNode 是特征注入节点：为召回结果补充实时特征（评分、评论数等）。
// 目录里的评分是数据集快照，线上评分会漂移；详情展示与 rank.Blend
// 都希望用最新值。
//
// 支持两种模式：
//  1. Feast 模式：通过 feast.Client 批量拉取在线特征（推荐）
//  2. Store 模式：从 core.KeyValueStore 的 Hash 读取缓存特征
//
// 特征值写入 item.Features（数值）；rating 同时覆盖 Meta["rating"]，
// 使后续节点与展示层拿到的是同一份最新值。
type EnrichNode struct {
	// Client Feast 客户端；非空时优先使用
	Client feast.Client

	// FeatureRefs 要拉取的特征名称，例如 ["product_live_stats:rating"]
	FeatureRefs []string

	// EntityKey 实体 key 名称，默认 "product_id"
	EntityKey string

	// Project Feast 项目名称（可选）
	Project string

	// Store 缓存特征的存储（Store 模式）；Hash key 为 KeyPrefix + 产品 ID
	Store core.KeyValueStore

	// KeyPrefix Store 模式下的 key 前缀，默认 "features:product:"
	KeyPrefix string
}

func (n *EnrichNode) Name() string {
	return "feature.enrich"
}

func (n *EnrichNode) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *EnrichNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	if n.Client != nil && len(n.FeatureRefs) > 0 {
		// 特征服务不可用时降级为原始结果，不中断推荐
		if err := n.enrichFromFeast(ctx, items); err == nil {
			return items, nil
		}
	}
	if n.Store != nil {
		n.enrichFromStore(ctx, items)
	}
	return items, nil
}

func (n *EnrichNode) enrichFromFeast(ctx context.Context, items []*core.Item) error {
	entityKey := n.EntityKey
	if entityKey == "" {
		entityKey = "product_id"
	}

	entityRows := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		entityRows = append(entityRows, map[string]interface{}{entityKey: it.ID})
	}
	if len(entityRows) == 0 {
		return nil
	}

	resp, err := n.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   n.FeatureRefs,
		EntityRows: entityRows,
		Project:    n.Project,
	})
	if err != nil {
		return fmt.Errorf("feature: enrich from feast: %w", err)
	}

	idx := 0
	for _, it := range items {
		if it == nil {
			continue
		}
		if idx >= len(resp.FeatureVectors) {
			break
		}
		n.applyFeatures(it, resp.FeatureVectors[idx].Values, "feast")
		idx++
	}
	return nil
}

func (n *EnrichNode) enrichFromStore(ctx context.Context, items []*core.Item) {
	prefix := n.KeyPrefix
	if prefix == "" {
		prefix = "features:product:"
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		fields, err := n.Store.HGetAll(ctx, prefix+it.ID)
		if err != nil || len(fields) == 0 {
			continue
		}
		values := make(map[string]interface{}, len(fields))
		for field, raw := range fields {
			var v interface{}
			if json.Unmarshal(raw, &v) == nil {
				values[field] = v
			}
		}
		n.applyFeatures(it, values, n.Store.Name())
	}
}

// applyFeatures 把特征值写入 item：数值进 Features，rating 同步进 Meta。
func (n *EnrichNode) applyFeatures(it *core.Item, values map[string]interface{}, source string) {
	if len(values) == 0 {
		return
	}
	for name, v := range values {
		f, ok := conv.ToFloat64(v)
		if !ok {
			continue
		}
		if it.Features == nil {
			it.Features = make(map[string]float64)
		}
		it.Features["live_"+shortName(name)] = f
		if shortName(name) == "rating" {
			if it.Meta == nil {
				it.Meta = make(map[string]any)
			}
			it.Meta["rating"] = f
		}
	}
	it.PutLabel("feature_source", utils.Label{Value: source, Source: "postprocess"})
}

// shortName 去掉特征引用里的 feature view 前缀："product_live_stats:rating" -> "rating"。
func shortName(ref string) string {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == ':' {
			return ref[i+1:]
		}
	}
	return ref
}
