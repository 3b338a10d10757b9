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

import (
	"errors"
	"strings"
)

// ErrConfiguration matches every ConfigurationError with errors.Is.
var ErrConfiguration = errors.New("invalid filter configuration")

// ConfigurationError 过滤器配置错误，在启动时返回，阻止解析器启动
// ConfigurationError is a compile time error raised while building filters.
// It names the offending filter and field so the operator can fix it
// before any file is processed.
type ConfigurationError struct {
	// Filter is the configuration tag, empty when the tag itself is unknown or missing.
	Filter string
	// Path locates the filter node, e.g. global_filters[0].composite_filter.filters[1].
	Path string
	// Field is the offending configuration key, if any.
	Field string
	// Reason describes the problem.
	Reason string
	// Err is the underlying error, if any.
	Err error
}

// NewConfigurationError creates a ConfigurationError.
func NewConfigurationError(ctx BuildContext, filterType, field, reason string) *ConfigurationError {
	return &ConfigurationError{Filter: filterType, Path: ctx.Path, Field: field, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	var sb strings.Builder
	sb.WriteString("filter configuration error")
	if e.Path != "" {
		sb.WriteString(" at ")
		sb.WriteString(e.Path)
	}
	if e.Filter != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Filter)
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	if e.Field != "" {
		sb.WriteString("field '")
		sb.WriteString(e.Field)
		sb.WriteString("' ")
	}
	sb.WriteString(e.Reason)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConfiguration) true for every ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
