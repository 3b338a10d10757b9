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
	"time"

	"github.com/dlclark/regexp2"
)

// PatternMatcher 预编译的正则表达式
// PatternMatcher is a compiled regular expression plus its case sensitivity.
// It uses search semantics: anchors are the pattern author's responsibility.
// The syntax is Perl/Python compatible (lookarounds, backreferences).
// A PatternMatcher is safe for concurrent use.
type PatternMatcher struct {
	source        string
	caseSensitive bool
	re            *regexp2.Regexp
}

// NewPatternMatcher compiles source. timeout bounds each match, zero means no limit.
func NewPatternMatcher(source string, caseSensitive bool, timeout time.Duration) (*PatternMatcher, error) {
	var opts regexp2.RegexOptions
	if !caseSensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(source, opts)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return &PatternMatcher{source: source, caseSensitive: caseSensitive, re: re}, nil
}

// Match reports whether the pattern occurs in value.
// A match that times out counts as no match.
func (m *PatternMatcher) Match(value string) bool {
	ok, err := m.re.MatchString(value)
	return err == nil && ok
}

func (m *PatternMatcher) Source() string {
	return m.source
}

func (m *PatternMatcher) CaseSensitive() bool {
	return m.caseSensitive
}
