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

	"github.com/rulego/recfilter/api/types"
	"gopkg.in/yaml.v3"
)

// DefaultParserName is the parser name given to a document whose root holds
// a filters list instead of a parsers section.
const DefaultParserName = "default"

// Document 过滤配置文档
// Document is a decoded filter configuration file:
//
//	global_filters: [...]
//	parsers:
//	  cor_parser:
//	    filters: [...]
type Document struct {
	// GlobalFilters apply to every parser of the document.
	GlobalFilters []interface{}
	// Parsers maps parser names to their filter lists.
	Parsers map[string]FilterSpec
}

// YamlParser Yaml
// YamlParser decodes filter documents with gopkg.in/yaml.v3.
// JSON documents are valid YAML and are accepted too.
type YamlParser struct {
}

// DecodeDocument 通过yaml解析过滤配置文档
func (p *YamlParser) DecodeDocument(data []byte) (*Document, error) {
	var root map[string]interface{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode filter document: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("decode filter document: empty document")
	}
	return p.document(types.Configuration(root))
}

// DecodeFilterSpec 通过yaml解析单个解析器的过滤配置
func (p *YamlParser) DecodeFilterSpec(data []byte) (FilterSpec, error) {
	var root map[string]interface{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return FilterSpec{}, fmt.Errorf("decode filter configuration: %w", err)
	}
	return ParseFilterSpec(root)
}

// EncodeFilterSpec 把过滤配置编码为yaml
func (p *YamlParser) EncodeFilterSpec(spec FilterSpec) ([]byte, error) {
	return yaml.Marshal(spec)
}

func (p *YamlParser) document(root types.Configuration) (*Document, error) {
	doc := &Document{Parsers: make(map[string]FilterSpec)}
	top, err := ParseFilterSpec(root)
	if err != nil {
		return nil, err
	}
	doc.GlobalFilters = top.GlobalFilters

	if raw, ok := root[types.ParsersKey]; ok && raw != nil {
		parsers, ok := toConfiguration(raw)
		if !ok {
			return nil, &types.ConfigurationError{Path: types.ParsersKey,
				Reason: fmt.Sprintf("must be a mapping of parser names, got %T", raw)}
		}
		for name, section := range parsers {
			if section == nil {
				doc.Parsers[name] = FilterSpec{}
				continue
			}
			sectionConfiguration, ok := toConfiguration(section)
			if !ok {
				return nil, &types.ConfigurationError{Path: types.ParsersKey + "." + name,
					Reason: fmt.Sprintf("must be a mapping, got %T", section)}
			}
			spec, err := ParseFilterSpec(sectionConfiguration)
			if err != nil {
				return nil, fmt.Errorf("parser %s: %w", name, err)
			}
			if len(spec.GlobalFilters) > 0 {
				return nil, &types.ConfigurationError{Path: types.ParsersKey + "." + name + "." + types.GlobalFiltersKey,
					Reason: "global filters must be declared at the document root"}
			}
			doc.Parsers[name] = spec
		}
	}
	if len(top.Filters) > 0 {
		if _, exists := doc.Parsers[DefaultParserName]; exists {
			return nil, &types.ConfigurationError{Path: types.FiltersKey,
				Reason: fmt.Sprintf("root filters conflict with parser '%s'", DefaultParserName)}
		}
		doc.Parsers[DefaultParserName] = FilterSpec{Filters: top.Filters}
	}
	return doc, nil
}

// ParserNames returns the parser names in sorted order.
func (d *Document) ParserNames() []string {
	names := make([]string, 0, len(d.Parsers))
	for name := range d.Parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spec returns the filter spec of a parser, with the document's global filters.
func (d *Document) Spec(name string) (FilterSpec, error) {
	spec, ok := d.Parsers[name]
	if !ok {
		return FilterSpec{}, fmt.Errorf("parser '%s' not found, available: %s", name, strings.Join(d.ParserNames(), " "))
	}
	spec.GlobalFilters = d.GlobalFilters
	return spec, nil
}

// Chain compiles the filter chain of a parser. The chain id is the parser name.
func (d *Document) Chain(name string, config types.Config) (*FilterChain, error) {
	spec, err := d.Spec(name)
	if err != nil {
		return nil, err
	}
	return NewFilterChain(name, spec, config)
}
