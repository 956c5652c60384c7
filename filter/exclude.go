package filter

import (
	"context"

	"github.com/rushteam/glowkit/core"
)

// ExcludeFilter 是排除名单过滤器：过滤掉名单中的产品。
// 用于下架产品、用户标记“不再推荐”的产品等。
type ExcludeFilter struct {
	// ProductIDs 是内存中的排除名单
	ProductIDs []string

	// Store 用于从存储中读取排除名单（可选）
	Store ExcludeStore

	// Key 是 Store 中的名单 key（可选）
	Key string
}

// ExcludeStore 是排除名单存储接口。
type ExcludeStore interface {
	// GetExcluded 获取排除名单中的产品 ID 列表
	GetExcluded(ctx context.Context, key string) ([]string, error)
}

func (f *ExcludeFilter) Name() string {
	return "filter.exclude"
}

func (f *ExcludeFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, id := range f.ProductIDs {
		if item.ID == id {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		excluded, err := f.Store.GetExcluded(ctx, f.Key)
		if err == nil {
			for _, id := range excluded {
				if item.ID == id {
					return true, nil
				}
			}
		}
	}

	return false, nil
}
