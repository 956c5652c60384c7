// Package dsl 提供基于 CEL (Common Expression Language) 的规则表达式求值，
// 用于规则驱动的过滤与策略（filter.RuleFilter）。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/glowkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Eval 是规则表达式解释器。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.score > 0.3 / item.meta.price < 50.0
//   - 标签：label.recall_source == "ingredient"
//   - 逻辑：label.recall_source == "hot" && item.score >= 0.5
//   - 包含：label.recall_source.contains("ingredient")
//
// 注意：访问不存在的 key 会报错，存在性检查请用 label.key != null。
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个针对单个 item 的解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) (*Eval, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	return &Eval{item: item, rctx: rctx, env: env}, nil
}

// Evaluate 解析并执行规则表达式，返回布尔结果。
// 空表达式恒为 true。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据。
func (e *Eval) buildInput() map[string]interface{} {
	// label.recall_source 直接取 Label.Value，是最常用的访问形式
	labels := make(map[string]interface{})
	for k, v := range e.item.Labels {
		labels[k] = v.Value
	}

	item := map[string]interface{}{
		"id":       e.item.ID,
		"score":    e.item.Score,
		"features": e.item.Features,
		"meta":     e.item.Meta,
	}

	rctx := map[string]interface{}{}
	if e.rctx != nil {
		rctx = map[string]interface{}{
			"query_product_id": e.rctx.QueryProductID,
			"scene":            e.rctx.Scene,
			"top_n":            e.rctx.TopN,
			"min_score":        e.rctx.MinScore,
			"params":           e.rctx.Params,
		}
	}

	return map[string]interface{}{
		"item":  item,
		"label": labels,
		"rctx":  rctx,
	}
}
