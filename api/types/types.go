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

// Package types defines the shared types of the record filter engine:
// records, filter components, build context, configuration and errors.
package types

// Record 一条解码后的记录，字段名 -> 原始字符串值
// Record is one decoded record: field name -> raw field value.
// Filters never mutate a record.
type Record map[string]string

// Get returns the value of field and whether it is present and non-empty.
// An absent field and an empty value are treated the same way.
func (r Record) Get(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Configuration 过滤器配置，由宿主配置加载器反序列化得到
// Configuration is the generic, already deserialized configuration of one filter.
type Configuration map[string]interface{}

// Filter 过滤器，编译后不可变，可被多个协程并发使用
// Filter is the compiled, executable form of a filter configuration.
// Once built it is immutable and safe for concurrent use.
type Filter interface {
	// Type returns the configuration tag of the filter, e.g. date_filter.
	Type() string
	// Evaluate reports whether the record is kept.
	Evaluate(record Record) bool
}

// FilterComponent 可注册的过滤器组件
// FilterComponent is a filter prototype held by the component registry.
// New returns a fresh, unconfigured instance; Init compiles it.
// Init is only called once, before the instance is published.
type FilterComponent interface {
	Filter
	// New creates a new instance with default configuration.
	New() FilterComponent
	// Init decodes, validates and compiles the configuration.
	Init(ctx BuildContext, configuration Configuration) error
}

// ComponentRegistry 过滤器组件注册器
// ComponentRegistry maps configuration tags to filter components.
type ComponentRegistry interface {
	// Register adds a component. Registering an existing tag is an error.
	Register(component FilterComponent) error
	// Unregister removes the component with the given tag.
	Unregister(filterType string) error
	// NewFilter creates an unconfigured instance for the tag.
	NewFilter(filterType string) (FilterComponent, error)
	// GetComponents returns a copy of the registered components keyed by tag.
	GetComponents() map[string]FilterComponent
	// Types returns the registered tags, sorted.
	Types() []string
}

// BuildContext 构建上下文，传递给每个组件的Init
// BuildContext is handed to FilterComponent.Init.
type BuildContext struct {
	// Config is the engine configuration.
	Config Config
	// Path locates the filter in the configuration, e.g. filters[1].composite_filter.
	Path string
	// BuildChild compiles a nested filter node. Used by composite filters.
	BuildChild func(path string, node interface{}) (Filter, error)
}
