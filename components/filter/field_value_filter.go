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
//  - field_value_filter:
//      field_name: COR_STATUS
//      exclude_values: ["Draft", "Pending"]
//      pattern: "^[A-Z]"
//      case_sensitive: false
import (
	"github.com/rulego/recfilter/api/types"
)

// init 注册FieldValueFilter组件
// init registers the FieldValueFilter component with the default registry.
func init() {
	Registry.Add(&FieldValueFilter{})
}

// FieldValueFilterConfiguration FieldValueFilter配置结构
// FieldValueFilterConfiguration defines the configuration structure for the FieldValueFilter component.
// At least one of FilterValues, ExcludeValues and Pattern must be set.
type FieldValueFilterConfiguration struct {
	// FieldName 要检查的字段名称
	// FieldName is the record field to check.
	FieldName string `mapstructure:"field_name" validate:"required"`
	// FilterValues 白名单，值必须在其中
	// FilterValues is the whitelist: when set, the value must be a member.
	FilterValues []string `mapstructure:"filter_values,omitempty"`
	// ExcludeValues 黑名单，优先于白名单和正则
	// ExcludeValues is the blacklist. It takes precedence over FilterValues and Pattern.
	ExcludeValues []string `mapstructure:"exclude_values,omitempty"`
	// Pattern 正则表达式，搜索匹配
	// Pattern is a regular expression that must occur in the value.
	Pattern string `mapstructure:"pattern,omitempty"`
	// CaseSensitive 正则是否区分大小写，默认true
	// CaseSensitive applies to Pattern only. Defaults to true.
	CaseSensitive bool `mapstructure:"case_sensitive"`
}

// FieldValueFilter 根据字段值过滤记录的过滤组件
// FieldValueFilter filters records on one field's value.
//
// 评估顺序 - Evaluation order:
//  1. 字段缺失或为空：不匹配 - Missing or empty field does not match
//  2. 值在黑名单中：不匹配 - A blacklisted value does not match
//  3. 配置了白名单且值不在其中：不匹配 - A value outside a configured whitelist does not match
//  4. 配置了正则且未匹配：不匹配 - A value the configured pattern does not occur in does not match
//
// 若正则编译失败且未启用严格模式，则忽略正则条件。
// When the pattern fails to compile and strict patterns are off, the
// pattern clause is dropped.
type FieldValueFilter struct {
	// Config 字段值过滤器配置
	// Config holds the field value filter configuration
	Config FieldValueFilterConfiguration

	include map[string]struct{}
	exclude map[string]struct{}
	matcher *PatternMatcher
}

// Type 返回组件类型
// Type returns the component type identifier.
func (x *FieldValueFilter) Type() string {
	return types.FieldValueFilterType
}

// New 创建新实例
// New creates a new instance.
func (x *FieldValueFilter) New() types.FilterComponent {
	return &FieldValueFilter{Config: FieldValueFilterConfiguration{CaseSensitive: true}}
}

// Init 初始化组件，构建集合并编译正则
// Init builds the value sets and compiles the pattern.
func (x *FieldValueFilter) Init(ctx types.BuildContext, configuration types.Configuration) error {
	if err := decodeConfig(ctx, x.Type(), configuration, &x.Config); err != nil {
		return err
	}
	if len(x.Config.FilterValues) == 0 && len(x.Config.ExcludeValues) == 0 && x.Config.Pattern == "" {
		return types.NewConfigurationError(ctx, x.Type(), "",
			"at least one of filter_values, exclude_values or pattern must be provided")
	}
	x.include = toSet(x.Config.FilterValues)
	x.exclude = toSet(x.Config.ExcludeValues)

	if x.Config.Pattern != "" {
		matcher, err := NewPatternMatcher(x.Config.Pattern, x.Config.CaseSensitive, ctx.Config.PatternTimeout)
		if err != nil {
			if !ctx.Config.LenientPatterns {
				return &types.ConfigurationError{Filter: x.Type(), Path: ctx.Path, Field: "pattern",
					Reason: "cannot compile regular expression", Err: err}
			}
			types.Warnf(ctx.Config.Logger, "%s: pattern %q on field %s does not compile, pattern clause disabled: %v",
				ctx.Path, x.Config.Pattern, x.Config.FieldName, err)
		} else {
			x.matcher = matcher
		}
	}
	return nil
}

// Evaluate 评估记录
// Evaluate reports whether the field value passes every configured clause.
func (x *FieldValueFilter) Evaluate(record types.Record) bool {
	value, ok := record.Get(x.Config.FieldName)
	if !ok {
		return false
	}
	if _, excluded := x.exclude[value]; excluded {
		return false
	}
	if x.include != nil {
		if _, included := x.include[value]; !included {
			return false
		}
	}
	if x.matcher != nil && !x.matcher.Match(value) {
		return false
	}
	return true
}

// PatternDisabled reports whether a configured pattern was dropped because
// it failed to compile.
func (x *FieldValueFilter) PatternDisabled() bool {
	return x.Config.Pattern != "" && x.matcher == nil
}

// toSet returns nil for an empty list so that a nil set means "not configured".
func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
