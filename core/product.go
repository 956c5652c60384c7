package core

import (
	"fmt"
	"sort"
)

// Product 是强类型的产品记录，对应数据集中的一行（清洗后）。
// Ingredients 是有序的成分 token 序列；为空的产品不参与相似度计算。
type Product struct {
	ID          string
	Name        string
	Brand       string
	Category    string // 产品类型：moisturizer / cleanser / serum ...
	Ingredients []string
	Price       float64
	Rating      float64
	ImageURL    string
	ProductURL  string
}

// Eligible 返回产品是否可参与相似度计算（至少包含一个成分 token）。
func (p *Product) Eligible() bool {
	return p != nil && len(p.Ingredients) > 0
}

// Catalog 是会话期内不可变的产品目录：ID -> Product 映射。
// 构建时校验 ID 唯一且非空；构建后不再修改，可在多个并发请求间只读共享。
type Catalog struct {
	products map[string]*Product
	ids      []string // 全量产品 ID，升序，保证遍历确定性
	eligible []string // 可参与相似度计算的产品 ID，升序
}

// NewCatalog 从产品列表构建目录。
// 校验规则：
//   - 产品 ID 非空
//   - 产品 ID 唯一（重复 ID 视为数据错误，整体构建失败）
//
// 成分为空的产品允许进入目录（仍可被查询详情），但不进入 eligible 集合。
func NewCatalog(products []*Product) (*Catalog, error) {
	c := &Catalog{
		products: make(map[string]*Product, len(products)),
	}
	for _, p := range products {
		if p == nil {
			continue
		}
		if p.ID == "" {
			return nil, NewDomainError(ModuleCatalog, ErrorCodeInvalidParameter,
				fmt.Sprintf("catalog: product %q has empty id", p.Name))
		}
		if _, exists := c.products[p.ID]; exists {
			return nil, NewDomainError(ModuleCatalog, ErrorCodeInvalidParameter,
				fmt.Sprintf("catalog: duplicate product id %q", p.ID))
		}
		c.products[p.ID] = p
		c.ids = append(c.ids, p.ID)
		if p.Eligible() {
			c.eligible = append(c.eligible, p.ID)
		}
	}
	sort.Strings(c.ids)
	sort.Strings(c.eligible)
	return c, nil
}

// Get 按 ID 查询产品。
func (c *Catalog) Get(id string) (*Product, bool) {
	if c == nil {
		return nil, false
	}
	p, ok := c.products[id]
	return p, ok
}

// Len 返回目录中的产品总数。
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}

// IDs 返回全量产品 ID（升序）。调用方不应修改返回的 slice。
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	return c.ids
}

// EligibleIDs 返回可参与相似度计算的产品 ID（升序）。
func (c *Catalog) EligibleIDs() []string {
	if c == nil {
		return nil
	}
	return c.eligible
}

// EligibleCount 返回可参与相似度计算的产品数。
func (c *Catalog) EligibleCount() int {
	if c == nil {
		return 0
	}
	return len(c.eligible)
}

// Categories 返回目录中出现过的产品类型（去重、升序），用于展示层构建筛选项。
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool, 16)
	out := make([]string, 0, 16)
	for _, id := range c.ids {
		cate := c.products[id].Category
		if cate == "" || seen[cate] {
			continue
		}
		seen[cate] = true
		out = append(out, cate)
	}
	sort.Strings(out)
	return out
}

// NewItemFromProduct 从产品构建一个 Item，并把展示层需要的字段写入 Meta。
func NewItemFromProduct(p *Product) *Item {
	it := NewItem(p.ID)
	it.Meta["name"] = p.Name
	it.Meta["brand"] = p.Brand
	it.Meta["category"] = p.Category
	it.Meta["price"] = p.Price
	it.Meta["rating"] = p.Rating
	if p.ImageURL != "" {
		it.Meta["image_url"] = p.ImageURL
	}
	if p.ProductURL != "" {
		it.Meta["product_url"] = p.ProductURL
	}
	return it
}
