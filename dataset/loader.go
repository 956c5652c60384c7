// Package dataset 负责从 CSV 数据集构建产品目录。
// 清洗规则在这里收口：成分列表解析、价格清洗、品牌标准化。
// 目录一旦构建完成即不可变，推荐链路只读共享。
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rushteam/glowkit/core"
)

// 数据集列名（skincare_products CSV 约定）。
const (
	colID       = "product_id"
	colName     = "product_name"
	colBrand    = "brand"
	colCategory = "product_type"
	colIngre    = "ingredients"
	colPrice    = "updated_price"
	colRating   = "product_rating"
	colURL      = "product_url"
	colImageURL = "product_image_url"
)

// LoadCSV 读取 CSV 数据集并构建目录。
// 必需列：product_id, product_name, product_type, ingredients；
// 其余列缺失时对应字段为零值。
func LoadCSV(path string) (*core.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load 从 reader 读取 CSV 数据集并构建目录。
func Load(r io.Reader) (*core.Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 行宽交由列索引校验

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{colID, colName, colCategory, colIngre} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("dataset: missing required column %q", required)
		}
	}

	var products []*core.Product
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read row %d: %w", line+1, err)
		}
		line++

		field := func(col string) string {
			idx, ok := cols[col]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		p := &core.Product{
			ID:          field(colID),
			Name:        field(colName),
			Brand:       NormalizeBrand(field(colBrand)),
			Category:    strings.ToLower(field(colCategory)),
			Ingredients: ParseIngredients(field(colIngre)),
			ImageURL:    field(colImageURL),
			ProductURL:  field(colURL),
		}
		if raw := field(colPrice); raw != "" {
			price, err := ParsePrice(raw)
			if err != nil {
				return nil, fmt.Errorf("dataset: row %d: %w", line, err)
			}
			p.Price = price
		}
		if raw := field(colRating); raw != "" {
			rating, err := ParseRating(raw)
			if err != nil {
				return nil, fmt.Errorf("dataset: row %d: %w", line, err)
			}
			p.Rating = rating
		}

		products = append(products, p)
	}

	catalog, err := core.NewCatalog(products)
	if err != nil {
		return nil, fmt.Errorf("dataset: build catalog: %w", err)
	}
	return catalog, nil
}

// ParseIngredients 解析数据集中的成分列。
// 数据集导出时把成分存成了带括号引号的列表字面量：
//
//	"['Aqua', 'Glycerin', 'Niacinamide']"
//
// 这里剥掉括号与引号、按逗号切分、小写标准化。普通逗号分隔的
// 纯文本成分串同样适用。
func ParseIngredients(raw string) []string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		tok := strings.TrimSpace(part)
		tok = strings.Trim(tok, `'"`)
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// ParsePrice 解析价格字段，容忍货币符号与千分位："$1,234.50" -> 1234.5。
func ParsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad price %q", raw)
	}
	if price < 0 {
		return 0, fmt.Errorf("negative price %q", raw)
	}
	return price, nil
}

// ParseRating 解析评分字段。数据集评分为 5 分制，越界的脏数据整体拒绝：
// recall.Hot 与 rank.Blend 都以 rating/5 作为 [0, 1] 分数，越界评分会污染排序。
func ParseRating(raw string) (float64, error) {
	rating, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("bad rating %q", raw)
	}
	if rating < 0 || rating > 5 {
		return 0, fmt.Errorf("rating %q out of [0, 5]", raw)
	}
	return rating, nil
}

// NormalizeBrand 标准化品牌名：压缩空白、统一大小写书写。
// 同一品牌在数据集中存在 "the ordinary" / "The  Ordinary" 等多种写法，
// 不标准化会导致品牌多样性重排失效。
// 首字母按 rune 处理，"éminence" 这类非 ASCII 品牌名不能按字节切。
func NormalizeBrand(raw string) string {
	fields := strings.Fields(raw)
	for i, f := range fields {
		lower := strings.ToLower(f)
		r, size := utf8.DecodeRuneInString(lower)
		if r == utf8.RuneError {
			fields[i] = lower
			continue
		}
		fields[i] = string(unicode.ToUpper(r)) + lower[size:]
	}
	return strings.Join(fields, " ")
}
