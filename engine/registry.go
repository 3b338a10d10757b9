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
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rulego/recfilter/api/types"
	"github.com/rulego/recfilter/components/filter"
)

// Registry is the default registry for filter components.
var Registry = new(FilterComponentRegistry)

// init registers the built-in filter components to the default registry.
func init() {
	for _, component := range filter.Registry.Components() {
		_ = Registry.Register(component)
	}
}

var _ types.ComponentRegistry = (*FilterComponentRegistry)(nil)

// FilterComponentRegistry maps configuration tags to filter components.
// The accepted vocabulary is exactly the set of registered tags.
type FilterComponentRegistry struct {
	// components is a map of filter prototypes keyed by tag.
	components map[string]types.FilterComponent
	// RWMutex is a read/write mutex lock.
	sync.RWMutex
}

// NewFilterComponentRegistry creates a registry holding the given components.
func NewFilterComponentRegistry(components ...types.FilterComponent) (*FilterComponentRegistry, error) {
	r := new(FilterComponentRegistry)
	for _, c := range components {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a filter component to the registry.
func (r *FilterComponentRegistry) Register(component types.FilterComponent) error {
	r.Lock()
	defer r.Unlock()
	if r.components == nil {
		r.components = make(map[string]types.FilterComponent)
	}
	if _, ok := r.components[component.Type()]; ok {
		return errors.New("the component already exists. componentType=" + component.Type())
	}
	r.components[component.Type()] = component

	return nil
}

// Unregister removes a component from the registry by its type.
func (r *FilterComponentRegistry) Unregister(componentType string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.components[componentType]; !ok {
		return fmt.Errorf("component not found. componentType=%s", componentType)
	}
	delete(r.components, componentType)
	return nil
}

// NewFilter creates a new, unconfigured instance of a filter component by its type.
func (r *FilterComponentRegistry) NewFilter(componentType string) (types.FilterComponent, error) {
	r.RLock()
	defer r.RUnlock()

	if component, ok := r.components[componentType]; !ok {
		return nil, fmt.Errorf("component not found. componentType=%s", componentType)
	} else {
		return component.New(), nil
	}
}

// GetComponents returns a map of all registered components.
func (r *FilterComponentRegistry) GetComponents() map[string]types.FilterComponent {
	r.RLock()
	defer r.RUnlock()
	var components = map[string]types.FilterComponent{}
	for k, v := range r.components {
		components[k] = v
	}
	return components
}

// Types returns the registered tags, sorted.
func (r *FilterComponentRegistry) Types() []string {
	r.RLock()
	defer r.RUnlock()
	tags := make([]string, 0, len(r.components))
	for k := range r.components {
		tags = append(tags, k)
	}
	sort.Strings(tags)
	return tags
}
