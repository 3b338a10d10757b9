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

// Package filter provides the record filter components of the engine.
//
// These components decide whether a decoded record is kept:
//
// - DateFilter: Compares a date field against inclusive boundaries
// - FieldValueFilter: Checks a field against a whitelist, a blacklist and a pattern
// - CompositeFilter: Combines child filters with AND/OR and short-circuit
// - ExprFilter: Evaluates a boolean expression over the record's fields
//
// date_filter, field_value_filter and composite_filter are the core tags
// every filter document may use. expr_filter is an extra tag on top of
// them: documents that must stay portable to other hosts of the same
// filter format should not rely on it.
//
// Each component is added to Registry and registered with engine.Registry
// under its configuration tag. Components are configured once by Init and
// are then immutable, so a compiled filter tree can be shared by any number
// of goroutines.
//
// You can use these components in a parser's filter list by referencing
// their tag. For example:
//
//	filters:
//	  - date_filter:
//	      date_field: COR_FILE_DATE
//	      start_date: "20250801"
//	      end_date: "20250831"
//	  - field_value_filter:
//	      field_name: COR_STATUS
//	      exclude_values: ["Draft", "Pending"]
package filter
