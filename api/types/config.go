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

package types

import (
	"runtime"
	"time"
)

// DefaultPatternTimeout bounds a single regular expression match.
const DefaultPatternTimeout = time.Second

// Config defines the configuration for the filter engine.
type Config struct {
	// Logger is the logging interface, defaulting to `DefaultLogger()`.
	Logger Logger
	// LenientPatterns decides what happens when a field value pattern fails to compile.
	//   - false (default): the build fails with a ConfigurationError and the parser must not start.
	//   - true: the pattern clause is disabled, a warning is logged once, and the clause
	//     no longer constrains the record.
	LenientPatterns bool
	// PatternTimeout is the maximum duration of one regular expression match.
	// A match that times out is treated as a non-match. Zero disables the timeout.
	PatternTimeout time.Duration
	// Concurrency is the number of workers used by FilterChain.AdmitAll,
	// defaulting to GOMAXPROCS.
	Concurrency int
	// ComponentsRegistry is the filter component registry, defaulting to `engine.Registry`.
	ComponentsRegistry ComponentRegistry
}

// NewConfig creates a new Config with default values and applies the provided options.
func NewConfig(opts ...Option) Config {
	c := &Config{
		Logger:         DefaultLogger(),
		PatternTimeout: DefaultPatternTimeout,
		Concurrency:    runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		_ = opt(c)
	}
	return *c
}
