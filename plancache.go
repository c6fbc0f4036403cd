/*
Copyright 2024 ciderkit

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cider

import (
	"sync"
)

// InterpretationCache is the engine's shared resolve-or-build cache of
// query plans.
//
// Concurrent resolves of the same key may build more than once, but
// only the first stored plan wins; later builders receive the stored
// plan.
type InterpretationCache struct {
	mu    sync.RWMutex
	plans map[InterpretationKey]QueryPlan
}

// NewInterpretationCache returns an empty interpretation cache.
func NewInterpretationCache() *InterpretationCache {
	return &InterpretationCache{plans: make(map[InterpretationKey]QueryPlan)}
}

// ResolveSelectQueryPlan returns the cached plan for the key, building
// and storing one with the supplier on a miss.
//
// A nil key or a supplier that yields no plan resolves to the
// supplier's result without touching the cache.
func (c *InterpretationCache) ResolveSelectQueryPlan(key *InterpretationKey, build func() QueryPlan) QueryPlan {
	if key == nil {
		return build()
	}
	c.mu.RLock()
	plan, ok := c.plans[*key]
	c.mu.RUnlock()
	if ok {
		return plan
	}
	plan = build()
	if plan == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if stored, ok := c.plans[*key]; ok {
		return stored
	}
	if c.plans == nil {
		c.plans = make(map[InterpretationKey]QueryPlan)
	}
	c.plans[*key] = plan
	return plan
}

// Size returns the number of cached plans.
func (c *InterpretationCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.plans)
}

// Flush removes all cached plans.
func (c *InterpretationCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.plans)
}
