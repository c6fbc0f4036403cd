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
	"sync"
)

// QueryPlan describes how a statement will be executed.
type QueryPlan interface {
	// QueryString returns the authored text of the planned statement.
	QueryString() string
}

// SelectStatement is the finalized, executable form of a select.
// It carries the dialect SQL and the parameters referenced by its
// placeholders in argument order; values are resolved at execution
// time so the statement can be shared across handles.
type SelectStatement struct {
	sql    string
	params []Parameter
}

// SQLString returns the dialect SQL of the statement.
func (s *SelectStatement) SQLString() string { return s.sql }

// Parameters returns the referenced parameters in argument order.
func (s *SelectStatement) Parameters() []Parameter {
	params := make([]Parameter, len(s.params))
	copy(params, s.params)
	return params
}

// ResolveArgs resolves the argument values from the given bindings in
// placeholder order.
func (s *SelectStatement) ResolveArgs(bindings *ParameterBindings) ([]any, error) {
	args := make([]any, 0, len(s.params))
	for _, param := range s.params {
		value, err := bindings.value(param.Name())
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	return args, nil
}

// CacheableInterpretation is the finalized, cache-eligible form of a
// select plan.
type CacheableInterpretation struct {
	selectStatement *SelectStatement
}

// SelectStatement returns the low-level statement of the interpretation.
func (i *CacheableInterpretation) SelectStatement() *SelectStatement {
	return i.selectStatement
}

// CompiledSelectPlan is the concrete select plan built for executable
// query handles. The interpretation is built lazily on first execution
// and kept for the lifetime of the plan.
type CompiledSelectPlan struct {
	queryString string
	tree        *StatementTree
	paramXref   *ParameterXref

	mu             sync.Mutex
	interpretation *CacheableInterpretation
}

// QueryString returns the authored text of the planned statement.
func (p *CompiledSelectPlan) QueryString() string { return p.queryString }

// BuildInterpretation finalizes the given statement tree into a
// cacheable interpretation. The execution context supplies the dialect
// and the bindings required by text expansions; the cross-reference is
// used to verify that every placeholder is declared.
//
// The result is not stored on the plan; see resolveInterpretation.
func (p *CompiledSelectPlan) BuildInterpretation(tree *StatementTree, xref *ParameterXref, ctx ExecutionContext) (*CacheableInterpretation, error) {
	if tree == nil || xref == nil || ctx == nil {
		return nil, fmt.Errorf("cider: incomplete interpretation input")
	}
	query, params, err := tree.Compile(ctx.Driver().Translator(), xref, ctx.ParameterBindings())
	if err != nil {
		return nil, err
	}
	return &CacheableInterpretation{
		selectStatement: &SelectStatement{sql: query, params: params},
	}, nil
}

// resolveInterpretation returns the plan's interpretation, building
// and storing it on first use.
func (p *CompiledSelectPlan) resolveInterpretation(ctx ExecutionContext) (*CacheableInterpretation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.interpretation != nil {
		return p.interpretation, nil
	}
	interpretation, err := p.BuildInterpretation(p.tree, p.paramXref, ctx)
	if err != nil {
		return nil, err
	}
	p.interpretation = interpretation
	return interpretation, nil
}

// executionPlan is the plan built for non-select statements.
// It has no cacheable interpretation; the statement is compiled on
// every execution.
type executionPlan struct {
	statement *Statement
}

// QueryString returns the authored text of the planned statement.
func (p *executionPlan) QueryString() string { return p.statement.Raw() }

// execute compiles and runs the statement through the given session.
func (p *executionPlan) execute(ctx context.Context, ec ExecutionContext, sess Session) (sql.Result, error) {
	query, args, err := p.statement.Build(ec.Driver().Translator(), ec.ParameterBindings())
	if err != nil {
		return nil, err
	}
	return sess.ExecContext(ctx, query, args...)
}

var (
	_ QueryPlan = (*CompiledSelectPlan)(nil)
	_ QueryPlan = (*executionPlan)(nil)
)
