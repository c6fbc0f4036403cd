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

// Package sqlextract extracts the SQL generated for a query handle.
//
// From returns the dialect SQL a handle will execute, resolved through
// the engine's interpretation cache; ParameterValues returns the values
// bound to it. Both walk engine internals that are not part of any
// contract, so every step is best effort: structural access goes
// through an accessor that reports absence instead of failing, and any
// mismatch degrades to the next fallback. The terminal fallback is the
// authored query text, which always succeeds. Beyond the nil-handle
// check, neither operation returns an error.
//
// The probe points below are tied to this engine version. A handle
// from a different engine version that no longer matches them does not
// break extraction; it falls through to the authored text.
package sqlextract

import (
	"errors"

	"github.com/ciderkit/cider"
	"github.com/ciderkit/cider/internal/reflectutil"
)

// ErrNilQuery is returned when the given query handle is nil.
var ErrNilQuery = errors.New("cider: nil query")

// maxUnwrapDepth bounds the handle unwrap loop against cyclic wrappers.
const maxUnwrapDepth = 32

// From returns the SQL generated for the given query handle.
//
// For an executable engine handle it returns the finalized dialect SQL
// of its select plan; for any other handle, and for any handle whose
// internals do not match the expected shape, it returns the authored
// query text unchanged. The result is never empty for a well-formed
// handle, and the only error is a nil handle.
func From(query cider.Query) (string, error) {
	if reflectutil.IsNil(query) {
		return "", ErrNilQuery
	}
	sq, ok := unwrapSQLQuery(query)
	if !ok {
		return query.QueryString(), nil
	}
	return extractSQL(sq), nil
}

// ParameterValues returns the values bound to the given query handle.
//
// For an executable engine handle the values are collected in bind
// order by visiting its bindings. For any other handle the public
// parameter enumeration is used and each parameter is re-resolved by
// position; that path makes no ordering promise, since the enumeration
// comes from a map traversal.
func ParameterValues(query cider.Query) ([]any, error) {
	if reflectutil.IsNil(query) {
		return nil, ErrNilQuery
	}
	if sq, ok := unwrapSQLQuery(query); ok {
		values := make([]any, 0, sq.ParameterBindings().Len())
		sq.ParameterBindings().VisitBindings(func(_ cider.Parameter, binding *cider.ParameterBinding) {
			values = append(values, binding.BindValue())
		})
		return values, nil
	}
	params := query.Parameters()
	values := make([]any, 0, len(params))
	for _, param := range params {
		value, err := query.ParameterValue(param.Position())
		if err != nil {
			continue
		}
		values = append(values, value)
	}
	return values, nil
}

// unwrapSQLQuery unwraps the handle down to the engine's executable
// query, following Unwrap() Query wrappers.
func unwrapSQLQuery(query cider.Query) (*cider.SQLQuery, bool) {
	for depth := 0; depth < maxUnwrapDepth; depth++ {
		if sq, ok := query.(*cider.SQLQuery); ok {
			return sq, true
		}
		wrapper, ok := query.(interface{ Unwrap() cider.Query })
		if !ok {
			return nil, false
		}
		inner := wrapper.Unwrap()
		if reflectutil.IsNil(inner) {
			return nil, false
		}
		query = inner
	}
	return nil, false
}

// extractSQL walks the handle's plan down to the low-level statement.
// Every traversal step has a "not found" path; each of them lands on
// the authored query text.
func extractSQL(sq *cider.SQLQuery) string {
	key := cider.CreateInterpretationKey(sq)
	build := func() cider.QueryPlan {
		v, ok := reflectutil.InvokeMethod(sq, "BuildSelectQueryPlan")
		if !ok {
			return nil
		}
		plan, _ := v.(cider.QueryPlan)
		return plan
	}
	var plan cider.QueryPlan
	if key != nil && sq.Engine() != nil {
		plan = sq.Engine().InterpretationCache().ResolveSelectQueryPlan(key, build)
	} else {
		plan = build()
	}

	selectPlan, ok := plan.(*cider.CompiledSelectPlan)
	if !ok {
		return sq.QueryString()
	}

	interpretation, _ := reflectutil.FieldValue(selectPlan, "interpretation")
	if reflectutil.IsNil(interpretation) {
		tree, _ := reflectutil.FieldValue(selectPlan, "tree")
		xref, _ := reflectutil.FieldValue(selectPlan, "paramXref")
		interpretation, _ = reflectutil.InvokeMethod(selectPlan, "BuildInterpretation", tree, xref, sq)
	}
	if reflectutil.IsNil(interpretation) {
		return sq.QueryString()
	}

	statement, _ := reflectutil.FieldValue(interpretation, "selectStatement")
	if s, ok := statement.(interface{ SQLString() string }); ok && !reflectutil.IsNil(s) {
		return s.SQLString()
	}
	return sq.QueryString()
}
