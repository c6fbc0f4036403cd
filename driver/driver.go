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

// Package driver defines the dialect drivers of the engine.
package driver

import (
	"database/sql"
	"fmt"
	"sync"
)

// Driver is a dialect driver of a database.
type Driver interface {
	// Translator returns a translator of SQL placeholders.
	Translator() Translator

	// Open opens a database connection with the given datasource.
	Open(datasource string) (*sql.DB, error)
}

var (
	// registeredDrivers is a map of registered drivers.
	// The key is a name of driver, it is used to get a driver.
	registeredDrivers = make(map[string]Driver)

	// lock is a lock for registeredDrivers.
	// For thread safety.
	lock sync.RWMutex
)

// Register registers a driver under the given name.
// It panics on an empty name, a nil driver or a duplicate name.
func Register(name string, driver Driver) {
	lock.Lock()
	defer lock.Unlock()
	if len(name) == 0 {
		panic("driver: name is empty")
	}
	if driver == nil {
		panic("driver: driver is nil")
	}
	if _, ok := registeredDrivers[name]; ok {
		panic(fmt.Sprintf("driver: %s already registered", name))
	}
	registeredDrivers[name] = driver
}

// Get returns the driver registered under the name.
// If the name is not registered, it returns an error.
func Get(name string) (Driver, error) {
	lock.RLock()
	defer lock.RUnlock()
	driver, ok := registeredDrivers[name]
	if !ok {
		return nil, fmt.Errorf("driver: %s not found", name)
	}
	return driver, nil
}
