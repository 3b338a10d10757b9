/*
 * Copyright 2023 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package filter

//过滤器配置示例：
//  - composite_filter:
//      operator: OR
//      filters:
//        - field_value_filter: {field_name: COR_STATUS, filter_values: [Active]}
//        - date_filter: {date_field: COR_FILE_DATE, start_date: "20250801", comparison_operator: after}
import (
	"fmt"
	"strings"

	"github.com/rulego/recfilter/api/types"
)

// init 注册CompositeFilter组件
// init registers the CompositeFilter component with the default registry.
func init() {
	Registry.Add(&CompositeFilter{})
}

// CompositeFilterConfiguration CompositeFilter配置结构
// CompositeFilterConfiguration defines the configuration structure for the CompositeFilter component.
type CompositeFilterConfiguration struct {
	// Operator 逻辑运算符 AND/OR，不区分大小写，默认AND
	// Operator combines the children: AND or OR, case-insensitive. Defaults to AND.
	Operator string `mapstructure:"operator"`
	// Filters 子过滤器节点列表，按顺序评估，可嵌套
	// Filters are the child filter nodes, evaluated in order. Children may be composites.
	Filters []interface{} `mapstructure:"filters" validate:"required"`
}

// CompositeFilter 使用AND/OR组合多个过滤器的过滤组件
// CompositeFilter combines child filters with AND or OR.
//
// 评估逻辑 - Evaluation logic:
//   - AND: 遇到第一个false立即返回false - Returns false at the first false child
//   - OR: 遇到第一个true立即返回true - Returns true at the first true child
//
// 剩余的子过滤器不再评估。
// Remaining children are not evaluated.
type CompositeFilter struct {
	// Config 组合过滤器配置
	// Config holds the composite filter configuration
	Config CompositeFilterConfiguration

	children []types.Filter
	isOr     bool
}

// Type 返回组件类型
// Type returns the component type identifier.
func (x *CompositeFilter) Type() string {
	return types.CompositeFilterType
}

// New 创建新实例
// New creates a new instance.
func (x *CompositeFilter) New() types.FilterComponent {
	return &CompositeFilter{Config: CompositeFilterConfiguration{Operator: types.OperatorAnd}}
}

// Init 初始化组件，递归构建子过滤器
// Init decodes the configuration and builds every child through ctx.BuildChild.
func (x *CompositeFilter) Init(ctx types.BuildContext, configuration types.Configuration) error {
	if err := decodeConfig(ctx, x.Type(), configuration, &x.Config); err != nil {
		return err
	}
	x.Config.Operator = strings.ToUpper(strings.TrimSpace(x.Config.Operator))
	switch x.Config.Operator {
	case types.OperatorAnd:
	case types.OperatorOr:
		x.isOr = true
	default:
		return types.NewConfigurationError(ctx, x.Type(), "operator", "must be one of: AND OR")
	}
	if len(x.Config.Filters) == 0 {
		return types.NewConfigurationError(ctx, x.Type(), "filters", "must not be empty")
	}
	if ctx.BuildChild == nil {
		return types.NewConfigurationError(ctx, x.Type(), "filters", "nested filters cannot be built without a factory")
	}
	x.children = make([]types.Filter, 0, len(x.Config.Filters))
	for i, node := range x.Config.Filters {
		child, err := ctx.BuildChild(fmt.Sprintf("%s.%s.filters[%d]", ctx.Path, x.Type(), i), node)
		if err != nil {
			return err
		}
		x.children = append(x.children, child)
	}
	return nil
}

// Evaluate 评估记录，短路求值
// Evaluate combines the children left to right with short-circuit.
func (x *CompositeFilter) Evaluate(record types.Record) bool {
	for _, child := range x.children {
		if child.Evaluate(record) == x.isOr {
			return x.isOr
		}
	}
	return !x.isOr
}

// Children returns the compiled child filters in configured order.
func (x *CompositeFilter) Children() []types.Filter {
	out := make([]types.Filter, len(x.children))
	copy(out, x.children)
	return out
}
