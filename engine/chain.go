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
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/hashicorp/go-multierror"
	"github.com/rulego/recfilter/api/types"
	"github.com/rulego/recfilter/utils/maps"
	"golang.org/x/sync/errgroup"
)

// FilterSpec 解析器的过滤配置
// FilterSpec holds the raw filter nodes of one parser.
type FilterSpec struct {
	// GlobalFilters apply to every parser and run first.
	GlobalFilters []interface{} `mapstructure:"global_filters" yaml:"global_filters"`
	// Filters apply to this parser only.
	Filters []interface{} `mapstructure:"filters" yaml:"filters"`
}

// ParseFilterSpec extracts the global_filters and filters lists from a
// parser configuration root. Other keys belong to the host and are ignored.
func ParseFilterSpec(root types.Configuration) (FilterSpec, error) {
	var spec FilterSpec
	for _, key := range []string{types.GlobalFiltersKey, types.FiltersKey} {
		if v, ok := root[key]; ok && v != nil {
			if _, isList := toNodeList(v); !isList {
				return spec, &types.ConfigurationError{Path: key, Reason: fmt.Sprintf("must be a list of filters, got %T", v)}
			}
		}
	}
	if err := maps.Map2Struct(map[string]interface{}(root), &spec); err != nil {
		return spec, fmt.Errorf("decode filter configuration: %w", err)
	}
	return spec, nil
}

// Stats 批量评估统计
// Stats summarises one AdmitAll batch.
type Stats struct {
	Read    int `json:"read"`
	Kept    int `json:"kept"`
	Dropped int `json:"dropped"`
}

// FilterChain 过滤器链，全局过滤器 + 解析器过滤器，构建后不可变
// FilterChain is the compiled filter set of one parser: global filters
// followed by the parser's own filters. A record is kept only if every
// filter keeps it. It is immutable and safe for concurrent use.
type FilterChain struct {
	id            string
	config        types.Config
	globalFilters []types.Filter
	filters       []types.Filter
}

// NewFilterChain compiles spec. An empty id is replaced by a generated one.
// Every filter node is validated and all configuration errors are returned
// together; any error means the parser must not start.
func NewFilterChain(id string, spec FilterSpec, config types.Config) (*FilterChain, error) {
	if id == "" {
		uuId, _ := uuid.NewV4()
		id = uuId.String()
	}
	factory := NewFilterFactory(config)
	var result *multierror.Error
	globalFilters, err := factory.BuildList(types.GlobalFiltersKey, spec.GlobalFilters)
	if err != nil {
		result = multierror.Append(result, err)
	}
	filters, err := factory.BuildList(types.FiltersKey, spec.Filters)
	if err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("chain %s: %w", id, err)
	}
	return &FilterChain{
		id:            id,
		config:        factory.Config(),
		globalFilters: globalFilters,
		filters:       filters,
	}, nil
}

// Id returns the chain id.
func (c *FilterChain) Id() string {
	return c.id
}

// GlobalFilters returns the compiled global filters in order.
func (c *FilterChain) GlobalFilters() []types.Filter {
	return append([]types.Filter(nil), c.globalFilters...)
}

// Filters returns the compiled parser filters in order.
func (c *FilterChain) Filters() []types.Filter {
	return append([]types.Filter(nil), c.filters...)
}

// Admit reports whether record is kept. Global filters run first and
// evaluation stops at the first filter that rejects the record.
func (c *FilterChain) Admit(record types.Record) bool {
	for _, f := range c.globalFilters {
		if !f.Evaluate(record) {
			return false
		}
	}
	for _, f := range c.filters {
		if !f.Evaluate(record) {
			return false
		}
	}
	return true
}

// workers returns Config.Concurrency, or GOMAXPROCS when it is not set.
func (c *FilterChain) workers() int {
	if c.config.Concurrency > 0 {
		return c.config.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// AdmitAll 并发评估一批记录，按输入顺序返回保留的记录
// AdmitAll evaluates records with at most Config.Concurrency workers and
// returns the kept records in input order. It stops early and returns
// ctx.Err() when ctx is cancelled.
func (c *FilterChain) AdmitAll(ctx context.Context, records []types.Record) ([]types.Record, Stats, error) {
	start := time.Now()
	keep := make([]bool, len(records))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers())
	for i := range records {
		if gCtx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			keep[i] = c.Admit(records[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}

	kept := make([]types.Record, 0, len(records))
	for i, ok := range keep {
		if ok {
			kept = append(kept, records[i])
		}
	}
	stats := Stats{Read: len(records), Kept: len(kept), Dropped: len(records) - len(kept)}
	if c.config.Logger != nil {
		c.config.Logger.Printf("chain %s: read=%d kept=%d dropped=%d in %s",
			c.id, stats.Read, stats.Kept, stats.Dropped, time.Since(start))
	}
	return kept, stats, nil
}
