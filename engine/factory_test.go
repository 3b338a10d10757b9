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
package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/rulego/recfilter/api/types"
	"github.com/rulego/recfilter/components/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

func testConfig(opts ...types.Option) types.Config {
	return types.NewConfig(append([]types.Option{types.WithLogger(nopLogger{})}, opts...)...)
}

func asConfigurationError(t *testing.T, err error) *types.ConfigurationError {
	t.Helper()
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, types.ErrConfiguration))
	var cfgErr *types.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	return cfgErr
}

func TestFilterFactoryBuild(t *testing.T) {
	factory := NewFilterFactory(testConfig())

	t.Run("SingleKey", func(t *testing.T) {
		f, err := factory.Build(map[string]interface{}{
			types.FieldValueFilterType: map[string]interface{}{
				"field_name":     "COR_STATUS",
				"exclude_values": []interface{}{"Draft", "Pending"},
			},
		})
		require.Nil(t, err)
		assert.Equal(t, types.FieldValueFilterType, f.Type())
		assert.False(t, f.Evaluate(types.Record{"COR_STATUS": "Draft"}))
		assert.True(t, f.Evaluate(types.Record{"COR_STATUS": "Active"}))
	})

	t.Run("Flattened", func(t *testing.T) {
		f, err := factory.Build(types.Configuration{
			"type":                types.DateFilterType,
			"date_field":          "COR_FILE_DATE",
			"start_date":          "20250801",
			"end_date":            "20250831",
			"date_pattern":        "YYYYMMDD",
			"comparison_operator": "between",
		})
		require.Nil(t, err)
		assert.True(t, f.Evaluate(types.Record{"COR_FILE_DATE": "20250815"}))
		assert.False(t, f.Evaluate(types.Record{"COR_FILE_DATE": "20250901"}))
	})

	t.Run("YamlV2Maps", func(t *testing.T) {
		f, err := factory.Build(map[interface{}]interface{}{
			types.CompositeFilterType: map[interface{}]interface{}{
				"operator": "OR",
				"filters": []interface{}{
					map[interface{}]interface{}{types.FieldValueFilterType: map[interface{}]interface{}{
						"field_name": "A", "filter_values": []interface{}{"1"},
					}},
					map[interface{}]interface{}{"type": types.FieldValueFilterType,
						"field_name": "B", "filter_values": []interface{}{"2"},
					},
				},
			},
		})
		require.Nil(t, err)
		assert.True(t, f.Evaluate(types.Record{"B": "2"}))
		assert.False(t, f.Evaluate(types.Record{"A": "2"}))
	})

	t.Run("UnknownTag", func(t *testing.T) {
		_, err := factory.BuildAt("filters[4]", map[string]interface{}{"regex_filter": map[string]interface{}{}})
		cfgErr := asConfigurationError(t, err)
		assert.Equal(t, "filters[4]", cfgErr.Path)
		assert.True(t, strings.Contains(cfgErr.Reason, "regex_filter"))
		assert.True(t, strings.Contains(cfgErr.Reason, "composite_filter date_filter expr_filter field_value_filter"))
	})

	t.Run("MalformedNodes", func(t *testing.T) {
		for name, node := range map[string]interface{}{
			"NotAMapping":  "date_filter",
			"TwoKeys":      map[string]interface{}{types.DateFilterType: nil, types.FieldValueFilterType: nil},
			"EmptyMapping": map[string]interface{}{},
			"ScalarConfig": map[string]interface{}{types.DateFilterType: "COR_FILE_DATE"},
			"BadTypeKey":   map[string]interface{}{"type": 3, "field_name": "A"},
			"NilConfig":    map[string]interface{}{types.FieldValueFilterType: nil},
			"ListConfig":   map[string]interface{}{types.CompositeFilterType: []interface{}{}},
			"NilNode":      nil,
		} {
			t.Run(name, func(t *testing.T) {
				_, err := factory.Build(node)
				asConfigurationError(t, err)
			})
		}
	})

	t.Run("CustomRegistry", func(t *testing.T) {
		registry, err := NewFilterComponentRegistry(&filter.FieldValueFilter{})
		require.Nil(t, err)
		custom := NewFilterFactory(testConfig(types.WithComponentsRegistry(registry)))
		_, err = custom.Build(map[string]interface{}{types.DateFilterType: map[string]interface{}{
			"date_field": "D", "start_date": "20250801", "end_date": "20250831",
		}})
		cfgErr := asConfigurationError(t, err)
		assert.True(t, strings.HasSuffix(cfgErr.Reason, "must be one of: field_value_filter"))
	})

	t.Run("CoreTagsOnly", func(t *testing.T) {
		registry, err := NewFilterComponentRegistry(&filter.DateFilter{}, &filter.FieldValueFilter{}, &filter.CompositeFilter{})
		require.Nil(t, err)
		core := NewFilterFactory(testConfig(types.WithComponentsRegistry(registry)))
		_, err = core.Build(map[string]interface{}{types.CompositeFilterType: map[string]interface{}{
			"operator": "OR",
			"filters": []interface{}{
				map[string]interface{}{types.DateFilterType: map[string]interface{}{"date_field": "D", "start_date": "20250801", "comparison_operator": "after"}},
				map[string]interface{}{types.FieldValueFilterType: map[string]interface{}{"field_name": "COR_TYPE", "filter_values": []interface{}{"Invoice"}}},
			},
		}})
		require.Nil(t, err)
		_, err = core.Build(map[string]interface{}{types.ExprFilterType: map[string]interface{}{"expr": `COR_TYPE == "Invoice"`}})
		cfgErr := asConfigurationError(t, err)
		assert.True(t, strings.HasSuffix(cfgErr.Reason, "must be one of: composite_filter date_filter field_value_filter"))
	})
}

func TestFilterFactoryBadPatternPolicy(t *testing.T) {
	node := map[string]interface{}{types.FieldValueFilterType: map[string]interface{}{
		"field_name": "COR_NAME",
		"pattern":    "[unclosed",
	}}

	t.Run("StrictByDefault", func(t *testing.T) {
		_, err := NewFilterFactory(testConfig()).Build(node)
		cfgErr := asConfigurationError(t, err)
		assert.Equal(t, "pattern", cfgErr.Field)
	})

	t.Run("ZeroConfigIsStrict", func(t *testing.T) {
		_, err := NewFilterFactory(types.Config{Logger: nopLogger{}}).Build(node)
		asConfigurationError(t, err)
	})

	t.Run("Lenient", func(t *testing.T) {
		f, err := NewFilterFactory(testConfig(types.WithStrictPatterns(false))).Build(node)
		require.Nil(t, err)
		assert.True(t, f.(*filter.FieldValueFilter).PatternDisabled())
		assert.True(t, f.Evaluate(types.Record{"COR_NAME": "ABC"}))
	})
}

func TestFilterFactoryBuildList(t *testing.T) {
	factory := NewFilterFactory(testConfig())

	t.Run("Ordered", func(t *testing.T) {
		filters, err := factory.BuildList(types.FiltersKey, []interface{}{
			map[string]interface{}{types.FieldValueFilterType: map[string]interface{}{
				"field_name": "A", "filter_values": []interface{}{"1"},
			}},
			map[string]interface{}{types.DateFilterType: map[string]interface{}{
				"date_field": "D", "start_date": "20250801", "comparison_operator": "after",
			}},
		})
		require.Nil(t, err)
		require.Equal(t, 2, len(filters))
		assert.Equal(t, types.FieldValueFilterType, filters[0].Type())
		assert.Equal(t, types.DateFilterType, filters[1].Type())
	})

	t.Run("Empty", func(t *testing.T) {
		filters, err := factory.BuildList(types.FiltersKey, nil)
		require.Nil(t, err)
		assert.Equal(t, 0, len(filters))
	})

	t.Run("NotAList", func(t *testing.T) {
		_, err := factory.BuildList(types.FiltersKey, "date_filter")
		asConfigurationError(t, err)
	})

	t.Run("AllErrorsReported", func(t *testing.T) {
		_, err := factory.BuildList(types.FiltersKey, []interface{}{
			map[string]interface{}{types.FieldValueFilterType: map[string]interface{}{
				"field_name": "A", "filter_values": []interface{}{"1"},
			}},
			map[string]interface{}{types.DateFilterType: map[string]interface{}{
				"start_date": "20250801",
			}},
			map[string]interface{}{types.CompositeFilterType: map[string]interface{}{
				"filters": []interface{}{
					map[string]interface{}{types.FieldValueFilterType: map[string]interface{}{
						"field_name": "B",
					}},
				},
			}},
		})
		require.NotNil(t, err)
		assert.True(t, errors.Is(err, types.ErrConfiguration))
		var merr *multierror.Error
		require.True(t, errors.As(err, &merr))
		require.Equal(t, 2, len(merr.Errors))

		var first, second *types.ConfigurationError
		require.True(t, errors.As(merr.Errors[0], &first))
		require.True(t, errors.As(merr.Errors[1], &second))
		assert.Equal(t, "filters[1]", first.Path)
		assert.Equal(t, "date_field", first.Field)
		assert.Equal(t, "filters[2].composite_filter.filters[0]", second.Path)
		assert.Equal(t, types.FieldValueFilterType, second.Filter)
	})
}
