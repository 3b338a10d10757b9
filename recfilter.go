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

// Package recfilter provides a declarative record filter engine for file
// ingestion pipelines. Filters are declared in configuration, compiled once
// at startup into an immutable predicate tree, and evaluated against every
// decoded record to decide whether it is kept.
//
// # Usage
//
// Filter document format:
//
//	global_filters:
//	  - date_filter:
//	      date_field: COR_FILE_DATE
//	      start_date: "20250801"
//	      comparison_operator: after
//	parsers:
//	  cor_parser:
//	    filters:
//	      - field_value_filter:
//	          field_name: COR_STATUS
//	          exclude_values: [Draft, Pending]
//	      - composite_filter:
//	          operator: OR
//	          filters:
//	            - field_value_filter: {field_name: COR_TYPE, filter_values: [Invoice]}
//	            - field_value_filter: {field_name: COR_AMOUNT, pattern: "^[1-9][0-9]{3,}"}
//
// Load the document, one filter chain per parser:
//
//	err := recfilter.Load(data)
//
// Get the chain of a parser and evaluate records:
//
//	chain, ok := recfilter.Get("cor_parser")
//	keep := chain.Admit(types.Record{"COR_STATUS": "Active", "COR_FILE_DATE": "20250815"})
//
// Evaluate a batch concurrently:
//
//	kept, stats, err := chain.AdmitAll(ctx, records)
package recfilter

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rulego/recfilter/api/types"
	"github.com/rulego/recfilter/engine"
	"github.com/rulego/recfilter/utils/fs"
)

var DefaultRecFilter = &RecFilter{}

// ErrParserLoaded is returned when a document declares a parser that is
// already loaded.
var ErrParserLoaded = errors.New("parser is already loaded")

// RecFilter 过滤器链实例池
// RecFilter is a pool of compiled filter chains keyed by parser name.
// A parser name can be loaded only once; Del it before loading it again.
type RecFilter struct {
	chains sync.Map
	parser engine.YamlParser
	// mu serialises the check-then-store of Load, LoadDir and New.
	mu sync.Mutex
}

// Load 加载过滤配置文档，为每个解析器创建过滤器链
// Load compiles every parser of a filter document and stores the chains.
// Nothing is stored when any parser has a configuration error or is
// already loaded; all errors are returned together.
func (g *RecFilter) Load(data []byte, opts ...types.Option) error {
	chains, err := g.compile(data, types.NewConfig(opts...))
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkLoaded(chains); err != nil {
		return err
	}
	g.store(chains)
	return nil
}

// LoadDir 加载指定文件夹及其子文件夹所有过滤配置文档（.yaml/.yml结尾文件）
// LoadDir loads every *.yaml and *.yml document under folderPath. Like Load
// it stores nothing on error, and a parser declared by two documents is an
// error.
func (g *RecFilter) LoadDir(folderPath string, opts ...types.Option) error {
	folderPath = strings.TrimRight(folderPath, "/\\")
	if folderPath == "" {
		folderPath = "."
	}
	config := types.NewConfig(opts...)
	var result *multierror.Error
	var chains []*engine.FilterChain
	sources := make(map[string]string)
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		paths, err := fs.GetFilePaths(folderPath + "/" + pattern)
		if err != nil {
			return err
		}
		for _, path := range paths {
			data, err := fs.ReadInput(path)
			if err != nil {
				return err
			}
			compiled, err := g.compile(data, config)
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
				continue
			}
			for _, chain := range compiled {
				if first, ok := sources[chain.Id()]; ok {
					result = multierror.Append(result,
						fmt.Errorf("%s: parser '%s' is already declared in %s", path, chain.Id(), first))
					continue
				}
				sources[chain.Id()] = path
				chains = append(chains, chain)
			}
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkLoaded(chains); err != nil {
		return err
	}
	g.store(chains)
	return nil
}

// compile decodes a filter document and compiles the chain of every parser.
func (g *RecFilter) compile(data []byte, config types.Config) ([]*engine.FilterChain, error) {
	doc, err := g.parser.DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	var result *multierror.Error
	chains := make([]*engine.FilterChain, 0, len(doc.Parsers))
	for _, name := range doc.ParserNames() {
		chain, err := doc.Chain(name, config)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		chains = append(chains, chain)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return chains, nil
}

// checkLoaded reports every chain whose id is already in the pool.
// The caller holds mu.
func (g *RecFilter) checkLoaded(chains []*engine.FilterChain) error {
	var result *multierror.Error
	for _, chain := range chains {
		if _, ok := g.chains.Load(chain.Id()); ok {
			result = multierror.Append(result, fmt.Errorf("%w: '%s'", ErrParserLoaded, chain.Id()))
		}
	}
	return result.ErrorOrNil()
}

func (g *RecFilter) store(chains []*engine.FilterChain) {
	for _, chain := range chains {
		g.chains.Store(chain.Id(), chain)
	}
}

// New 创建一个新的过滤器链并将其存储在池中
// New compiles one parser configuration root ({global_filters, filters})
// and stores the chain. An existing chain with the same id is returned as is.
// If id is empty, a generated id is used.
func (g *RecFilter) New(id string, root types.Configuration, opts ...types.Option) (*engine.FilterChain, error) {
	if v, ok := g.chains.Load(id); ok {
		return v.(*engine.FilterChain), nil
	}
	spec, err := engine.ParseFilterSpec(root)
	if err != nil {
		return nil, err
	}
	chain, err := engine.NewFilterChain(id, spec, types.NewConfig(opts...))
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if v, ok := g.chains.Load(chain.Id()); ok {
		return v.(*engine.FilterChain), nil
	}
	g.chains.Store(chain.Id(), chain)
	return chain, nil
}

// Get 获取指定ID过滤器链
func (g *RecFilter) Get(id string) (*engine.FilterChain, bool) {
	v, ok := g.chains.Load(id)
	if ok {
		return v.(*engine.FilterChain), ok
	}
	return nil, false
}

// Del 删除指定ID过滤器链
func (g *RecFilter) Del(id string) {
	g.chains.Delete(id)
}

// Range calls f for every chain until f returns false.
func (g *RecFilter) Range(f func(chain *engine.FilterChain) bool) {
	g.chains.Range(func(key, value any) bool {
		return f(value.(*engine.FilterChain))
	})
}

// Load loads a filter document into DefaultRecFilter.
func Load(data []byte, opts ...types.Option) error {
	return DefaultRecFilter.Load(data, opts...)
}

// LoadDir loads a folder of filter documents into DefaultRecFilter.
func LoadDir(folderPath string, opts ...types.Option) error {
	return DefaultRecFilter.LoadDir(folderPath, opts...)
}

// New creates a chain in DefaultRecFilter.
func New(id string, root types.Configuration, opts ...types.Option) (*engine.FilterChain, error) {
	return DefaultRecFilter.New(id, root, opts...)
}

// Get returns a chain of DefaultRecFilter.
func Get(id string) (*engine.FilterChain, bool) {
	return DefaultRecFilter.Get(id)
}

// Del removes a chain from DefaultRecFilter.
func Del(id string) {
	DefaultRecFilter.Del(id)
}
