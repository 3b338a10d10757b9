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
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/rulego/recfilter/api/types"
	"github.com/rulego/recfilter/utils/str"
)

// FilterFactory 过滤器工厂，把配置节点编译成不可变的过滤器树
// FilterFactory compiles configuration nodes into immutable filter trees.
// All compilation work (boundary dates, regular expressions, expressions)
// happens here, once; the returned filters hold only pre-compiled state.
type FilterFactory struct {
	config   types.Config
	registry types.ComponentRegistry
}

// NewFilterFactory creates a factory. A nil registry in config means the default Registry.
func NewFilterFactory(config types.Config) *FilterFactory {
	if config.ComponentsRegistry == nil {
		config.ComponentsRegistry = Registry
	}
	if config.Logger == nil {
		config.Logger = types.DefaultLogger()
	}
	return &FilterFactory{config: config, registry: config.ComponentsRegistry}
}

// Config returns the configuration the factory builds with.
func (f *FilterFactory) Config() types.Config {
	return f.config
}

// Build compiles one filter node. A node is a single-key mapping
// {tag: configuration}, or the flattened form {type: tag, ...configuration}.
func (f *FilterFactory) Build(node interface{}) (types.Filter, error) {
	return f.BuildAt("", node)
}

// BuildAt is Build with the node's location, used in error messages.
func (f *FilterFactory) BuildAt(path string, node interface{}) (types.Filter, error) {
	tag, configuration, err := resolveNode(path, node)
	if err != nil {
		return nil, err
	}
	component, err := f.registry.NewFilter(tag)
	if err != nil {
		return nil, &types.ConfigurationError{Path: path,
			Reason: fmt.Sprintf("unknown filter type '%s', must be one of: %s", tag, strings.Join(f.registry.Types(), " "))}
	}
	ctx := types.BuildContext{
		Config:     f.config,
		Path:       path,
		BuildChild: f.BuildAt,
	}
	if err := component.Init(ctx, configuration); err != nil {
		return nil, err
	}
	return component, nil
}

// BuildList compiles an ordered list of filter nodes found at path
// (e.g. filters). Every node is validated; all errors are returned together.
func (f *FilterFactory) BuildList(path string, nodes interface{}) ([]types.Filter, error) {
	list, ok := toNodeList(nodes)
	if !ok {
		return nil, &types.ConfigurationError{Path: path, Reason: fmt.Sprintf("must be a list of filters, got %T", nodes)}
	}
	var result *multierror.Error
	filters := make([]types.Filter, 0, len(list))
	for i, node := range list {
		flt, err := f.BuildAt(fmt.Sprintf("%s[%d]", path, i), node)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		filters = append(filters, flt)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return filters, nil
}

// resolveNode splits a node into its tag and configuration.
func resolveNode(path string, node interface{}) (string, types.Configuration, error) {
	m, ok := toConfiguration(node)
	if !ok {
		return "", nil, &types.ConfigurationError{Path: path,
			Reason: fmt.Sprintf("filter node must be a mapping {filter_type: configuration}, got %T", node)}
	}
	if v, ok := m[types.TypeKey]; ok {
		tag, isStr := v.(string)
		if !isStr || tag == "" {
			return "", nil, &types.ConfigurationError{Path: path, Field: types.TypeKey, Reason: "must be a non-empty string"}
		}
		configuration := make(types.Configuration, len(m)-1)
		for k, val := range m {
			if k != types.TypeKey {
				configuration[k] = val
			}
		}
		return tag, configuration, nil
	}
	if len(m) != 1 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", nil, &types.ConfigurationError{Path: path,
			Reason: fmt.Sprintf("filter node must have exactly one filter type key, got [%s]", strings.Join(keys, " "))}
	}
	for tag, value := range m {
		if value == nil {
			return tag, types.Configuration{}, nil
		}
		configuration, ok := toConfiguration(value)
		if !ok {
			return "", nil, &types.ConfigurationError{Filter: tag, Path: path,
				Reason: fmt.Sprintf("configuration must be a mapping, got %T", value)}
		}
		return tag, configuration, nil
	}
	return "", nil, nil
}

// toConfiguration accepts the map shapes produced by JSON and YAML decoders.
func toConfiguration(v interface{}) (types.Configuration, bool) {
	switch m := v.(type) {
	case types.Configuration:
		return m, true
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(types.Configuration, len(m))
		for k, val := range m {
			out[str.ToString(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// toNodeList accepts the list shapes produced by decoders and Go literals.
func toNodeList(v interface{}) ([]interface{}, bool) {
	switch l := v.(type) {
	case nil:
		return nil, true
	case []interface{}:
		return l, true
	case []types.Configuration:
		out := make([]interface{}, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	case []map[string]interface{}:
		out := make([]interface{}, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	default:
		return nil, false
	}
}
