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

package types

// 过滤器类型
const (
	DateFilterType       = "date_filter"
	FieldValueFilterType = "field_value_filter"
	CompositeFilterType  = "composite_filter"
	ExprFilterType       = "expr_filter"
)

// 配置文件键
const (
	// FiltersKey holds the per-parser filter list.
	FiltersKey = "filters"
	// GlobalFiltersKey holds the filters applied to every parser.
	GlobalFiltersKey = "global_filters"
	// ParsersKey holds named parser sections, each with its own FiltersKey.
	ParsersKey = "parsers"
	// TypeKey is the tag key of the flattened node form {type: date_filter, ...}.
	TypeKey = "type"
)

// 组合过滤器运算符
const (
	OperatorAnd = "AND"
	OperatorOr  = "OR"
)

// 表达式过滤器环境变量
const (
	// RecordKey exposes the whole record to expressions, for field names
	// that are not valid identifiers.
	RecordKey = "record"
)
