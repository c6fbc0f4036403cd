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
	"database/sql"
	"log"
	"os"

	"github.com/ciderkit/cider/driver"
)

// Engine owns the dialect, the database connection and the shared
// interpretation cache, and produces executable query handles.
type Engine struct {
	driver          driver.Driver
	db              *sql.DB
	interpretations *InterpretationCache
	logger          *log.Logger
}

// New creates an Engine for the named dialect and opens the database
// connection through its driver.
func New(driverName, datasource string) (*Engine, error) {
	drv, err := driver.Get(driverName)
	if err != nil {
		return nil, err
	}
	db, err := drv.Open(datasource)
	if err != nil {
		return nil, err
	}
	engine := NewEngine(drv, db)
	engine.logger = log.New(os.Stdout, "[cider] ", log.LstdFlags)
	return engine, nil
}

// NewEngine creates an Engine from a pre-built driver and connection.
// The connection may be nil when the engine is only used to parse and
// introspect statements.
func NewEngine(drv driver.Driver, db *sql.DB) *Engine {
	return &Engine{
		driver:          drv,
		db:              db,
		interpretations: NewInterpretationCache(),
	}
}

// Query parses the query text into an executable handle.
func (e *Engine) Query(text string) (*SQLQuery, error) {
	statement, err := parseStatement(text)
	if err != nil {
		return nil, err
	}
	return &SQLQuery{
		engine:    e,
		statement: statement,
		bindings:  new(ParameterBindings),
	}, nil
}

// Driver returns the dialect driver of the engine.
func (e *Engine) Driver() driver.Driver { return e.driver }

// DB returns the database connection of the engine.
func (e *Engine) DB() *sql.DB { return e.db }

// InterpretationCache returns the engine's shared plan cache.
func (e *Engine) InterpretationCache() *InterpretationCache {
	return e.interpretations
}

// SetLogger sets the logger used for statement logging.
// A nil logger disables logging.
func (e *Engine) SetLogger(logger *log.Logger) { e.logger = logger }

// Close closes the database connection of the engine.
func (e *Engine) Close() error {
	if e.db == nil {
		return nil
	}
	return e.db.Close()
}

// logf logs a formatted message if a logger is configured.
func (e *Engine) logf(format string, args ...any) {
	if e == nil || e.logger == nil {
		return
	}
	e.logger.Printf(format, args...)
}
