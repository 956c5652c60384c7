package core

import "github.com/rushteam/glowkit/pkg/utils"

// RecommendContext 承载一次推荐请求的查询信息，贯穿整个 Pipeline 透传。
// GlowKit 是产品到产品的推荐：查询主体是一个产品而不是用户。
type RecommendContext struct {
	// QueryProductID 是被查询的产品 ID（“和它相似的产品有哪些”）。
	QueryProductID string

	// Scene 推荐场景，例如 detail（详情页）、search（搜索页）。
	Scene string

	// TopN 期望返回的推荐数量；<=0 视为参数错误。
	TopN int

	// MinScore 相似度阈值，取值 [0, 1]；严格低于阈值的候选被排除。
	MinScore float64

	// Labels 是请求级标签，可驱动整个 Pipeline 行为。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（如 budget、skin_type 等扩展维度）。
	Params map[string]any
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
