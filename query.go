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
	"context"
	"database/sql"
	"fmt"

	"github.com/ciderkit/cider/driver"
)

// Query is the public contract of a query handle.
//
// A handle may wrap another handle; wrappers expose the wrapped handle
// through an Unwrap() Query method, following the convention used by
// errors and database/sql.
type Query interface {
	// QueryString returns the query text as authored.
	QueryString() string

	// Parameters returns the declared parameters of the query.
	// No ordering is guaranteed.
	Parameters() []Parameter

	// ParameterValue returns the value currently bound to the
	// parameter declared at the given 1-based position.
	ParameterValue(position int) (any, error)
}

// ExecutionContext carries the state a plan needs to finalize a
// statement: the authored text, the current bindings and the dialect.
type ExecutionContext interface {
	QueryString() string
	ParameterBindings() *ParameterBindings
	Driver() driver.Driver
}

// SQLQuery is the executable query handle produced by the engine.
//
// Its internals (statement tree, parameter cross-reference, plan
// building) are deliberately not part of the Query contract and may
// change between versions.
type SQLQuery struct {
	engine    *Engine
	statement *Statement
	bindings  *ParameterBindings
	session   Session
}

// QueryString returns the query text as authored.
func (q *SQLQuery) QueryString() string { return q.statement.Raw() }

// Statement returns the parsed statement of the query.
func (q *SQLQuery) Statement() *Statement { return q.statement }

// Engine returns the engine that created this handle.
func (q *SQLQuery) Engine() *Engine { return q.engine }

// Driver returns the dialect driver of the query.
func (q *SQLQuery) Driver() driver.Driver { return q.engine.Driver() }

// ParameterBindings returns the bindings of the query in bind order.
func (q *SQLQuery) ParameterBindings() *ParameterBindings { return q.bindings }

// Parameters returns the declared parameters of the query.
//
// The result is collected from a map traversal, so no ordering is
// guaranteed; use ParameterBindings for bind order.
func (q *SQLQuery) Parameters() []Parameter {
	params := make([]Parameter, 0, q.statement.ParamXref().Len())
	for _, param := range q.statement.ParamXref().byName {
		params = append(params, param)
	}
	return params
}

// ParameterValue returns the value currently bound to the parameter
// declared at the given 1-based position. An unbound parameter yields
// a nil value.
func (q *SQLQuery) ParameterValue(position int) (any, error) {
	param, ok := q.statement.ParamXref().ByPosition(position)
	if !ok {
		return nil, fmt.Errorf("cider: no parameter at position %d", position)
	}
	binding, ok := q.bindings.Binding(param.Name())
	if !ok {
		return nil, nil
	}
	return binding.BindValue(), nil
}

// Bind binds the value to the named parameter.
// The name must be declared by the statement.
func (q *SQLQuery) Bind(name string, value any) error {
	param, ok := q.statement.ParamXref().Parameter(name)
	if !ok {
		return fmt.Errorf("cider: parameter %s not found", name)
	}
	q.bindings.Bind(param, value)
	return nil
}

// MustBind is like Bind but panics on an undeclared name.
// It allows call chaining when the statement is known to be valid.
func (q *SQLQuery) MustBind(name string, value any) *SQLQuery {
	if err := q.Bind(name, value); err != nil {
		panic(err)
	}
	return q
}

// BuildSelectQueryPlan builds a fresh query plan for this handle.
//
// Statements whose action is not a select yield an execution plan,
// which carries no cacheable interpretation.
func (q *SQLQuery) BuildSelectQueryPlan() QueryPlan {
	if !q.statement.Action().ForRead() {
		return &executionPlan{statement: q.statement}
	}
	return &CompiledSelectPlan{
		queryString: q.statement.Raw(),
		tree:        q.statement.Tree(),
		paramXref:   q.statement.ParamXref(),
	}
}

// resolvePlan resolves the query plan through the engine's shared
// interpretation cache, or builds one directly when the query is not
// cacheable.
func (q *SQLQuery) resolvePlan() QueryPlan {
	key := CreateInterpretationKey(q)
	if key == nil {
		return q.BuildSelectQueryPlan()
	}
	return q.engine.InterpretationCache().ResolveSelectQueryPlan(key, q.BuildSelectQueryPlan)
}

// QueryContext executes the select statement and returns the rows.
func (q *SQLQuery) QueryContext(ctx context.Context) (*sql.Rows, error) {
	plan, ok := q.resolvePlan().(*CompiledSelectPlan)
	if !ok {
		return nil, ErrNotSelect
	}
	interpretation, err := plan.resolveInterpretation(q)
	if err != nil {
		return nil, err
	}
	statement := interpretation.SelectStatement()
	args, err := statement.ResolveArgs(q.bindings)
	if err != nil {
		return nil, err
	}
	q.engine.logf("[%s] %s %v", q.statement.Action(), statement.SQLString(), args)
	return q.sessionOrDB().QueryContext(ctx, statement.SQLString(), args...)
}

// ExecContext executes the non-select statement and returns the result.
func (q *SQLQuery) ExecContext(ctx context.Context) (sql.Result, error) {
	plan, ok := q.BuildSelectQueryPlan().(*executionPlan)
	if !ok {
		return nil, ErrReadOnly
	}
	q.engine.logf("[%s] %s", q.statement.Action(), q.statement.Raw())
	return plan.execute(ctx, q, q.sessionOrDB())
}

// sessionOrDB returns the session of the query, falling back to the
// engine's database connection.
func (q *SQLQuery) sessionOrDB() Session {
	if q.session != nil {
		return q.session
	}
	return q.engine.DB()
}

// WithSession returns a copy of the handle bound to the given session.
func (q *SQLQuery) WithSession(sess Session) *SQLQuery {
	clone := *q
	clone.session = sess
	return &clone
}

var (
	_ Query            = (*SQLQuery)(nil)
	_ ExecutionContext = (*SQLQuery)(nil)
)
