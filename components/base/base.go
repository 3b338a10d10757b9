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

// Package base provides helpers shared by filter components.
package base

import (
	"github.com/rulego/recfilter/api/types"
)

var NodeUtils = &nodeUtils{}

type nodeUtils struct {
}

// GetEnv 构建表达式运行环境
// GetEnv builds the expression environment of a record: every field is a
// top level variable, and the whole record is available under types.RecordKey
// for field names that are not valid identifiers.
// A field named like types.RecordKey is only reachable through the record map.
func (n *nodeUtils) GetEnv(record types.Record) map[string]interface{} {
	fields := make(map[string]interface{}, len(record))
	env := make(map[string]interface{}, len(record)+1)
	for k, v := range record {
		fields[k] = v
		env[k] = v
	}
	env[types.RecordKey] = fields
	return env
}
