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
//  - expr_filter:
//      expr: 'COR_STATUS == "Active" && len(COR_NUMBER) >= 8'
import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rulego/recfilter/api/types"
	"github.com/rulego/recfilter/components/base"
)

func init() {
	Registry.Add(&ExprFilter{})
}

// ExprFilterConfiguration 节点配置
type ExprFilterConfiguration struct {
	// 表达式
	Expr string `mapstructure:"expr" validate:"required"`
}

// ExprFilter 使用expr表达式过滤记录
// 记录的每个字段都是字符串变量，例如: `COR_STATUS == "Active"`
// 通过`record`变量访问整条记录，例如: `record["COR-NUMBER"] != ""`
// 未定义的字段为nil，表达式执行失败视为不匹配
// ExprFilter is an extension tag; it is not one of the three core filter tags.
type ExprFilter struct {
	//节点配置
	Config  ExprFilterConfiguration
	program *vm.Program
}

// Type 组件类型
func (x *ExprFilter) Type() string {
	return types.ExprFilterType
}

func (x *ExprFilter) New() types.FilterComponent {
	return &ExprFilter{}
}

// Init 初始化，编译表达式
func (x *ExprFilter) Init(ctx types.BuildContext, configuration types.Configuration) error {
	if err := decodeConfig(ctx, x.Type(), configuration, &x.Config); err != nil {
		return err
	}
	program, err := expr.Compile(x.Config.Expr, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return &types.ConfigurationError{Filter: x.Type(), Path: ctx.Path, Field: "expr",
			Reason: "cannot compile expression", Err: err}
	}
	x.program = program
	return nil
}

// Evaluate 评估记录
func (x *ExprFilter) Evaluate(record types.Record) bool {
	out, err := vm.Run(x.program, base.NodeUtils.GetEnv(record))
	if err != nil {
		return false
	}
	result, ok := out.(bool)
	return ok && result
}
