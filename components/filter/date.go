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
	"strings"
	"time"
)

// DatePattern 日期格式名称
// DatePattern names a supported date format.
type DatePattern string

const (
	PatternYYYYMMDD DatePattern = "YYYYMMDD"
	PatternISODate  DatePattern = "YYYY-MM-DD"
	PatternUSDate   DatePattern = "MM/DD/YYYY"
	PatternEUDate   DatePattern = "DD/MM/YYYY"
	// PatternISO8601 accepts full timestamps such as 2025-08-15T10:30:00Z,
	// with optional fractional seconds and numeric offsets, and plain dates.
	PatternISO8601 DatePattern = "ISO8601"
)

// DefaultDatePattern is used when date_pattern is not configured.
const DefaultDatePattern = PatternYYYYMMDD

var errInvalidDate = errors.New("invalid date")

// dateLayouts 日期格式 -> Go time layout
// Single digit month and day are accepted for the slash formats.
var dateLayouts = map[DatePattern][]string{
	PatternYYYYMMDD: {"20060102"},
	PatternISODate:  {"2006-01-02"},
	PatternUSDate:   {"1/2/2006"},
	PatternEUDate:   {"2/1/2006"},
	PatternISO8601: {
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02",
	},
}

// datePatternAliases maps alternative spellings to a pattern.
var datePatternAliases = map[string]DatePattern{
	"ISO":                  PatternISO8601,
	"ISO-8601":             PatternISO8601,
	"YYYY-MM-DDTHH:MM:SSZ": PatternISO8601,
}

// ParseDatePattern resolves a configured pattern name, ignoring case.
// ok is false for unsupported patterns.
func ParseDatePattern(name string) (DatePattern, bool) {
	if name == "" {
		return DefaultDatePattern, true
	}
	upper := strings.ToUpper(strings.TrimSpace(name))
	if _, ok := dateLayouts[DatePattern(upper)]; ok {
		return DatePattern(upper), true
	}
	if alias, ok := datePatternAliases[upper]; ok {
		return alias, true
	}
	return "", false
}

// Parse converts a raw field value into an instant. Date only patterns
// and timestamps without an offset are read as UTC; a timestamp with an
// offset keeps it, so its date part is the one written in the value.
// Surrounding blanks, common in fixed-width files, are ignored.
func (p DatePattern) Parse(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errInvalidDate
	}
	layouts, ok := dateLayouts[p]
	if !ok {
		return time.Time{}, errInvalidDate
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, raw, time.UTC)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Comparator 日期比较运算符
// Comparator is the comparison applied between a record date and the boundaries.
type Comparator string

const (
	Between Comparator = "between"
	After   Comparator = "after"
	Before  Comparator = "before"
	Equals  Comparator = "equals"
)

// NeedsStart reports whether start_date must be configured.
func (c Comparator) NeedsStart() bool {
	return c == Between || c == After || c == Equals
}

// NeedsEnd reports whether end_date must be configured.
func (c Comparator) NeedsEnd() bool {
	return c == Between || c == Before
}

// Compare 比较记录日期与边界，两端均为闭区间
// Compare applies the comparator. Boundaries are inclusive; equals compares
// calendar dates only, as written in each value.
func (c Comparator) Compare(value, start, end time.Time) bool {
	switch c {
	case Between:
		return !value.Before(start) && !value.After(end)
	case After:
		return !value.Before(start)
	case Before:
		return !value.After(end)
	case Equals:
		return sameDate(value, start)
	default:
		return false
	}
}

// sameDate compares the calendar dates of a and b, each in its own location.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
