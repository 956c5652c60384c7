// Package ingredient 提供成分序列的 TF-IDF 向量化与余弦相似度计算。
// 数值语义（零范数、上下界、平滑规则）全部显式实现，便于审计与测试。
package ingredient

import "math"

// Corpus 维护成分 token 的文档频率统计，用于计算 IDF 权重。
// 一个“文档”是一个产品的成分序列；每个 token 在单个文档内只计一次文档频率。
type Corpus struct {
	docFreq map[string]int
	numDocs int
}

// NewCorpus 从成分序列集合构建 Corpus。
func NewCorpus(docs [][]string) *Corpus {
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, tok := range doc {
			if tok == "" || seen[tok] {
				continue
			}
			seen[tok] = true
			docFreq[tok]++
		}
	}
	return &Corpus{
		docFreq: docFreq,
		numDocs: len(docs),
	}
}

// NumDocs 返回参与统计的文档数。
func (c *Corpus) NumDocs() int { return c.numDocs }

// DocFreq 返回 token 的文档频率（包含该 token 的文档数）。
func (c *Corpus) DocFreq(token string) int { return c.docFreq[token] }

// Vectorize 将成分 token 序列转为稀疏 TF-IDF 向量。
//   - TF：token 在本序列内的归一化频率
//   - IDF：log(1 + N / (1 + df))，带平滑，df 越大权重越低
//
// 空序列返回空向量（零范数，余弦相似度按 0 处理）。
func (c *Corpus) Vectorize(tokens []string) map[string]float64 {
	vec := make(map[string]float64, len(tokens))
	if len(tokens) == 0 {
		return vec
	}

	tf := make(map[string]float64, len(tokens))
	total := 0.0
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		tf[tok]++
		total++
	}
	if total == 0 {
		return vec
	}

	for tok, count := range tf {
		idf := math.Log(1 + float64(c.numDocs)/(1+float64(c.docFreq[tok])))
		vec[tok] = (count / total) * idf
	}
	return vec
}

// Cosine 计算两个稀疏向量的余弦相似度：dot(u,v) / (||u|| * ||v||)。
//   - 任一向量零范数时返回 0
//   - 结果钳制到 [0, 1]，使相同向量的比较不受浮点舍入影响
func Cosine(u, v map[string]float64) float64 {
	// 遍历较小的向量即可：不同时出现的维度对点积无贡献
	small, large := u, v
	if len(large) < len(small) {
		small, large = large, small
	}

	var dot float64
	for k, x := range small {
		if y, ok := large[k]; ok {
			dot += x * y
		}
	}

	var normU, normV float64
	for _, x := range u {
		normU += x * x
	}
	for _, y := range v {
		normV += y * y
	}
	if normU == 0 || normV == 0 {
		return 0
	}

	score := dot / (math.Sqrt(normU) * math.Sqrt(normV))
	if score < 0 {
		return 0
	}
	// 相同向量必须精确得到 1，否则 min_score=1.0 的过滤语义不成立
	if score > 1 || 1-score < 1e-12 {
		return 1
	}
	return score
}
