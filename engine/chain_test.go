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
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rulego/recfilter/api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corSpec = FilterSpec{
	GlobalFilters: []interface{}{
		map[string]interface{}{types.DateFilterType: map[string]interface{}{
			"date_field":          "COR_FILE_DATE",
			"start_date":          "20250801",
			"end_date":            "20250831",
			"date_pattern":        "YYYYMMDD",
			"comparison_operator": "between",
		}},
	},
	Filters: []interface{}{
		map[string]interface{}{types.FieldValueFilterType: map[string]interface{}{
			"field_name":     "COR_STATUS",
			"exclude_values": []interface{}{"Draft", "Pending"},
		}},
		map[string]interface{}{types.CompositeFilterType: map[string]interface{}{
			"operator": "AND",
			"filters": []interface{}{
				map[string]interface{}{types.FieldValueFilterType: map[string]interface{}{
					"field_name": "COR_NUMBER",
					"pattern":    "^[0-9]{8,12}$",
				}},
				map[string]interface{}{types.FieldValueFilterType: map[string]interface{}{
					"field_name":    "COR_STATUS",
					"filter_values": []interface{}{"Active"},
				}},
			},
		}},
	},
}

// countingFilter counts evaluations.
type countingFilter struct {
	result bool
	calls  int32
}

func (f *countingFilter) Type() string { return "counting" }

func (f *countingFilter) Evaluate(types.Record) bool {
	atomic.AddInt32(&f.calls, 1)
	return f.result
}

func TestFilterChainAdmit(t *testing.T) {
	chain, err := NewFilterChain("cor_parser", corSpec, testConfig())
	require.Nil(t, err)
	assert.Equal(t, "cor_parser", chain.Id())
	assert.Equal(t, 1, len(chain.GlobalFilters()))
	assert.Equal(t, 2, len(chain.Filters()))

	tests := []struct {
		name   string
		record types.Record
		want   bool
	}{
		{"Kept", types.Record{"COR_FILE_DATE": "20250815", "COR_STATUS": "Active", "COR_NUMBER": "12345678"}, true},
		{"StartBoundary", types.Record{"COR_FILE_DATE": "20250801", "COR_STATUS": "Active", "COR_NUMBER": "123456789012"}, true},
		{"OutOfRange", types.Record{"COR_FILE_DATE": "20250901", "COR_STATUS": "Active", "COR_NUMBER": "12345678"}, false},
		{"Excluded", types.Record{"COR_FILE_DATE": "20250815", "COR_STATUS": "Draft", "COR_NUMBER": "12345678"}, false},
		{"BadNumber", types.Record{"COR_FILE_DATE": "20250815", "COR_STATUS": "Active", "COR_NUMBER": "abc"}, false},
		{"MissingDate", types.Record{"COR_STATUS": "Active", "COR_NUMBER": "12345678"}, false},
		{"Empty", types.Record{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chain.Admit(tt.record))
		})
	}
}

func TestFilterChainGlobalFiltersFirst(t *testing.T) {
	global := &countingFilter{result: false}
	local := &countingFilter{result: true}
	chain := &FilterChain{globalFilters: []types.Filter{global}, filters: []types.Filter{local}}
	assert.False(t, chain.Admit(types.Record{"A": "1"}))
	assert.Equal(t, int32(1), global.calls)
	assert.Equal(t, int32(0), local.calls)

	empty := &FilterChain{}
	assert.True(t, empty.Admit(types.Record{}))
}

func TestNewFilterChain(t *testing.T) {
	t.Run("GeneratedId", func(t *testing.T) {
		a, err := NewFilterChain("", FilterSpec{}, testConfig())
		require.Nil(t, err)
		b, err := NewFilterChain("", FilterSpec{}, testConfig())
		require.Nil(t, err)
		assert.Equal(t, 36, len(a.Id()))
		assert.NotEqual(t, a.Id(), b.Id())
	})

	t.Run("ErrorsFromBothLists", func(t *testing.T) {
		_, err := NewFilterChain("bad", FilterSpec{
			GlobalFilters: []interface{}{map[string]interface{}{"unknown_filter": nil}},
			Filters: []interface{}{map[string]interface{}{types.FieldValueFilterType: map[string]interface{}{
				"field_name": "A",
				"pattern":    "(",
			}}},
		}, testConfig())
		require.NotNil(t, err)
		assert.True(t, errors.Is(err, types.ErrConfiguration))
		assert.Contains(t, err.Error(), "chain bad")
		assert.Contains(t, err.Error(), "global_filters[0]")
		assert.Contains(t, err.Error(), "filters[0] (field_value_filter): field 'pattern'")
	})
}

func TestFilterChainAdmitAll(t *testing.T) {
	chain, err := NewFilterChain("cor_parser", corSpec, testConfig(types.WithConcurrency(4)))
	require.Nil(t, err)

	var records []types.Record
	var want []types.Record
	for i := 0; i < 200; i++ {
		status := "Active"
		if i%3 == 0 {
			status = "Draft"
		}
		record := types.Record{
			"COR_FILE_DATE": "20250815",
			"COR_STATUS":    status,
			"COR_NUMBER":    fmt.Sprintf("%08d", i),
		}
		records = append(records, record)
		if status == "Active" {
			want = append(want, record)
		}
	}

	kept, stats, err := chain.AdmitAll(context.Background(), records)
	require.Nil(t, err)
	assert.Equal(t, want, kept)
	assert.Equal(t, Stats{Read: 200, Kept: len(want), Dropped: 200 - len(want)}, stats)

	kept, stats, err = chain.AdmitAll(context.Background(), nil)
	require.Nil(t, err)
	assert.Equal(t, 0, len(kept))
	assert.Equal(t, Stats{}, stats)
}

func TestFilterChainAdmitAllCancelled(t *testing.T) {
	counter := &countingFilter{result: true}
	chain := &FilterChain{id: "cancelled", config: testConfig(types.WithConcurrency(1)), filters: []types.Filter{counter}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	records := make([]types.Record, 100)
	kept, _, err := chain.AdmitAll(ctx, records)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, kept)
	assert.Equal(t, int32(0), atomic.LoadInt32(&counter.calls))
}

// inFlightFilter records the highest number of concurrent evaluations.
type inFlightFilter struct {
	current int32
	max     int32
	calls   int32
}

func (f *inFlightFilter) Type() string { return "in_flight" }

func (f *inFlightFilter) Evaluate(types.Record) bool {
	n := atomic.AddInt32(&f.current, 1)
	for {
		m := atomic.LoadInt32(&f.max)
		if n <= m || atomic.CompareAndSwapInt32(&f.max, m, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&f.current, -1)
	atomic.AddInt32(&f.calls, 1)
	return true
}

func TestFilterChainAdmitAllZeroConfigIsBounded(t *testing.T) {
	chain, err := NewFilterChain("zero", FilterSpec{}, types.Config{Logger: nopLogger{}})
	require.Nil(t, err)
	assert.Equal(t, runtime.GOMAXPROCS(0), chain.workers())

	counter := &inFlightFilter{}
	chain.filters = []types.Filter{counter}
	records := make([]types.Record, 64)
	kept, stats, err := chain.AdmitAll(context.Background(), records)
	require.Nil(t, err)
	assert.Equal(t, 64, len(kept))
	assert.Equal(t, 64, stats.Kept)
	assert.Equal(t, int32(64), atomic.LoadInt32(&counter.calls))
	assert.LessOrEqual(t, int(atomic.LoadInt32(&counter.max)), runtime.GOMAXPROCS(0))

	limited := &FilterChain{id: "limited", config: testConfig(types.WithConcurrency(2)), filters: []types.Filter{&inFlightFilter{}}}
	assert.Equal(t, 2, limited.workers())
	_, _, err = limited.AdmitAll(context.Background(), records)
	require.Nil(t, err)
	assert.LessOrEqual(t, int(limited.filters[0].(*inFlightFilter).max), 2)
}
