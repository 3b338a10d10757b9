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
	"time"
)

// Option is a function type that modifies the Config.
type Option func(*Config) error

// WithComponentsRegistry is an option that sets the components' registry of the Config.
func WithComponentsRegistry(componentsRegistry ComponentRegistry) Option {
	return func(c *Config) error {
		c.ComponentsRegistry = componentsRegistry
		return nil
	}
}

// WithLogger is an option that sets the logger of the Config.
func WithLogger(logger Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithStrictPatterns is an option that sets the bad pattern policy of the Config.
// Strict is the default.
func WithStrictPatterns(strict bool) Option {
	return func(c *Config) error {
		c.LenientPatterns = !strict
		return nil
	}
}

// WithPatternTimeout is an option that sets the per match regular expression timeout.
func WithPatternTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		c.PatternTimeout = timeout
		return nil
	}
}

// WithConcurrency is an option that sets the number of AdmitAll workers.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(c *Config) error {
		if n > 0 {
			c.Concurrency = n
		}
		return nil
	}
}
