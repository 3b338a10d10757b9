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

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rulego/recfilter/api/types"
	"github.com/rulego/recfilter/utils/maps"
)

// Registry 过滤器组件注册列表
// Registry holds the built-in filter components. engine.Registry registers them at init.
var Registry = &types.SafeComponentSlice{}

var validate = newValidator()

// newValidator reports field names by their configuration key.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeConfig decodes configuration into out and validates its tags.
// Problems are returned as ConfigurationErrors.
func decodeConfig(ctx types.BuildContext, filterType string, configuration types.Configuration, out interface{}) error {
	if err := maps.Map2StructStrict(configuration, out); err != nil {
		return &types.ConfigurationError{Filter: filterType, Path: ctx.Path, Reason: "cannot decode configuration", Err: err}
	}
	if err := validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return types.NewConfigurationError(ctx, filterType, fe.Field(), describeTag(fe))
		}
		return &types.ConfigurationError{Filter: filterType, Path: ctx.Path, Reason: "invalid configuration", Err: err}
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " item(s)"
	default:
		return "failed validation '" + fe.Tag() + "'"
	}
}
