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
//  - date_filter:
//      date_field: COR_FILE_DATE
//      start_date: "20250801"
//      end_date: "20250831"
//      date_pattern: YYYYMMDD
//      comparison_operator: between
import (
	"time"

	"github.com/rulego/recfilter/api/types"
)

// init 注册DateFilter组件
// init registers the DateFilter component with the default registry.
func init() {
	Registry.Add(&DateFilter{})
}

// DateFilterConfiguration DateFilter配置结构
// DateFilterConfiguration defines the configuration structure for the DateFilter component.
type DateFilterConfiguration struct {
	// DateField 记录中日期字段名称
	// DateField is the record field holding the date.
	DateField string `mapstructure:"date_field" validate:"required"`
	// StartDate 开始日期（包含）
	// StartDate is the inclusive lower boundary, in DatePattern format.
	// Required by between, after and equals.
	StartDate string `mapstructure:"start_date,omitempty"`
	// EndDate 结束日期（包含）
	// EndDate is the inclusive upper boundary, in DatePattern format.
	// Required by between and before.
	EndDate string `mapstructure:"end_date,omitempty"`
	// DatePattern 日期格式：YYYYMMDD, YYYY-MM-DD, MM/DD/YYYY, DD/MM/YYYY, ISO8601
	DatePattern string `mapstructure:"date_pattern"`
	// ComparisonOperator 比较运算符：between, after, before, equals
	ComparisonOperator string `mapstructure:"comparison_operator" validate:"oneof=between after before equals"`
}

// DateFilter 根据记录日期字段过滤记录的过滤组件
// DateFilter keeps records whose date field falls within the configured boundaries.
//
// 评估逻辑 - Evaluation logic:
//   - 字段缺失或为空：不匹配 - Missing or empty field does not match
//   - 日期无法解析：不匹配 - Unparsable record date does not match
//   - 边界在构建时解析一次 - Boundaries are parsed once, at build time
type DateFilter struct {
	// Config 日期过滤器配置
	// Config holds the date filter configuration
	Config DateFilterConfiguration

	pattern    DatePattern
	comparator Comparator
	start      time.Time
	end        time.Time
}

// Type 返回组件类型
// Type returns the component type identifier.
func (x *DateFilter) Type() string {
	return types.DateFilterType
}

// New 创建新实例
// New creates a new instance.
func (x *DateFilter) New() types.FilterComponent {
	return &DateFilter{Config: DateFilterConfiguration{
		DatePattern:        string(DefaultDatePattern),
		ComparisonOperator: string(Between),
	}}
}

// Init 初始化组件，解析边界日期
// Init decodes the configuration and parses the boundary dates.
func (x *DateFilter) Init(ctx types.BuildContext, configuration types.Configuration) error {
	if err := decodeConfig(ctx, x.Type(), configuration, &x.Config); err != nil {
		return err
	}
	pattern, ok := ParseDatePattern(x.Config.DatePattern)
	if !ok {
		return types.NewConfigurationError(ctx, x.Type(), "date_pattern",
			"unsupported pattern '"+x.Config.DatePattern+"', must be one of: YYYYMMDD YYYY-MM-DD MM/DD/YYYY DD/MM/YYYY ISO8601")
	}
	x.pattern = pattern
	x.comparator = Comparator(x.Config.ComparisonOperator)

	if x.comparator.NeedsStart() && x.Config.StartDate == "" {
		return types.NewConfigurationError(ctx, x.Type(), "start_date",
			"is required when comparison_operator is "+x.Config.ComparisonOperator)
	}
	if x.comparator.NeedsEnd() && x.Config.EndDate == "" {
		return types.NewConfigurationError(ctx, x.Type(), "end_date",
			"is required when comparison_operator is "+x.Config.ComparisonOperator)
	}
	var err error
	if x.Config.StartDate != "" {
		if x.start, err = x.pattern.Parse(x.Config.StartDate); err != nil {
			return &types.ConfigurationError{Filter: x.Type(), Path: ctx.Path, Field: "start_date",
				Reason: "does not match date_pattern " + string(x.pattern), Err: err}
		}
	}
	if x.Config.EndDate != "" {
		if x.end, err = x.pattern.Parse(x.Config.EndDate); err != nil {
			return &types.ConfigurationError{Filter: x.Type(), Path: ctx.Path, Field: "end_date",
				Reason: "does not match date_pattern " + string(x.pattern), Err: err}
		}
	}
	if x.comparator == Between && x.end.Before(x.start) {
		types.Warnf(ctx.Config.Logger, "%s: end_date %s is before start_date %s, no record will match",
			ctx.Path, x.Config.EndDate, x.Config.StartDate)
	}
	return nil
}

// Evaluate 评估记录
// Evaluate reports whether the record date satisfies the comparison.
func (x *DateFilter) Evaluate(record types.Record) bool {
	raw, ok := record.Get(x.Config.DateField)
	if !ok {
		return false
	}
	value, err := x.pattern.Parse(raw)
	if err != nil {
		return false
	}
	return x.comparator.Compare(value, x.start, x.end)
}
