// Package builders 注册内置 Node 的配置构建器。
// import _ "github.com/rushteam/glowkit/config/builders" 即可启用配置驱动装配。
//
// 依赖目录的 Node（recall.ingredient / recall.hot / recall.fanout）无法仅凭
// 配置构建，需要在入口处调用 RegisterCatalogNodes(catalog) 注入目录。
package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/glowkit/config"
	"github.com/rushteam/glowkit/core"
	"github.com/rushteam/glowkit/filter"
	"github.com/rushteam/glowkit/pipeline"
	"github.com/rushteam/glowkit/pkg/conv"
	"github.com/rushteam/glowkit/rank"
	"github.com/rushteam/glowkit/recall"
	"github.com/rushteam/glowkit/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("rank.blend", BuildBlendNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.brand_diversity", BuildBrandDiversityNode)
}

// RegisterCatalogNodes 注册依赖产品目录的 Node 构建器。
// 目录是运行时数据而非配置，必须显式注入。
func RegisterCatalogNodes(catalog *core.Catalog) {
	config.Register("recall.ingredient", func(_ map[string]interface{}) (pipeline.Node, error) {
		return recall.NewIngredientSimilar(catalog), nil
	})

	config.Register("recall.hot", func(cfg map[string]interface{}) (pipeline.Node, error) {
		hot := &recall.Hot{
			Catalog: catalog,
			Key:     conv.ConfigGet(cfg, "key", ""),
		}
		if k := conv.ConfigGetInt64(cfg, "topk", 0); k > 0 {
			hot.TopK = int(k)
		}
		return hot, nil
	})

	config.Register("recall.fanout", func(cfg map[string]interface{}) (pipeline.Node, error) {
		sourcesConfig, ok := cfg["sources"].([]interface{})
		if !ok {
			return nil, fmt.Errorf("sources not found or invalid")
		}
		sources := make([]recall.Source, 0, len(sourcesConfig))
		for _, sc := range sourcesConfig {
			sourceMap, ok := sc.(map[string]interface{})
			if !ok {
				continue
			}
			switch sourceType := conv.ConfigGet(sourceMap, "type", ""); sourceType {
			case "ingredient":
				sources = append(sources, recall.NewIngredientSimilar(catalog))
			case "hot":
				hot := &recall.Hot{Catalog: catalog, Key: conv.ConfigGet(sourceMap, "key", "")}
				if k := conv.ConfigGetInt64(sourceMap, "topk", 0); k > 0 {
					hot.TopK = int(k)
				}
				sources = append(sources, hot)
			default:
				return nil, fmt.Errorf("unknown source type: %s", sourceType)
			}
		}
		fanout := &recall.Fanout{
			Sources:       sources,
			Dedup:         conv.ConfigGet(cfg, "dedup", true),
			MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", ""),
		}
		if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
			fanout.Timeout = time.Duration(sec) * time.Second
		}
		if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
			fanout.MaxConcurrent = int(n)
		}
		return fanout, nil
	})

	// 同类型过滤需要目录兜底查询产品类型，覆盖 init 中注册的基础版本
	config.Register("filter", buildFilterNode(catalog))
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return buildFilterNode(nil)(cfg)
}

func buildFilterNode(catalog *core.Catalog) config.NodeBuilder {
	return func(cfg map[string]interface{}) (pipeline.Node, error) {
		filtersConfig, ok := cfg["filters"].([]interface{})
		if !ok {
			return nil, fmt.Errorf("filters not found or invalid")
		}
		filters := make([]filter.Filter, 0, len(filtersConfig))
		for _, fc := range filtersConfig {
			filterMap, ok := fc.(map[string]interface{})
			if !ok {
				continue
			}
			switch filterType := conv.ConfigGet(filterMap, "type", ""); filterType {
			case "exclude":
				ids := conv.SliceAnyToString(filterMap["product_ids"])
				if ids == nil {
					ids = []string{}
				}
				filters = append(filters, &filter.ExcludeFilter{ProductIDs: ids})
			case "category":
				filters = append(filters, &filter.CategoryFilter{
					Catalog:     catalog,
					SameAsQuery: conv.ConfigGet(filterMap, "same_as_query", false),
					Category:    conv.ConfigGet(filterMap, "category", ""),
				})
			case "rule":
				expr := conv.ConfigGet(filterMap, "expr", "")
				if expr == "" {
					return nil, fmt.Errorf("rule filter requires expr")
				}
				filters = append(filters, &filter.RuleFilter{Expr: expr})
			default:
				return nil, fmt.Errorf("unknown filter type: %s", filterType)
			}
		}
		return &filter.FilterNode{Filters: filters}, nil
	}
}

func BuildBlendNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.BlendNode{
		SimilarityWeight: conv.ConfigGetFloat64(cfg, "similarity_weight", 0),
		RatingWeight:     conv.ConfigGetFloat64(cfg, "rating_weight", 0),
	}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{
		N: int(conv.ConfigGetInt64(cfg, "n", 0)),
	}, nil
}

func BuildBrandDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.BrandDiversity{
		MaxPerBrand: int(conv.ConfigGetInt64(cfg, "max_per_brand", 0)),
	}, nil
}
