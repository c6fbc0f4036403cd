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
	"strings"

	"github.com/ciderkit/cider/driver"
)

// Statement is a parsed sql statement.
type Statement struct {
	raw    string
	action Action
	tree   *StatementTree
	xref   *ParameterXref
}

// Raw returns the statement text as authored, unexpanded.
func (s *Statement) Raw() string { return s.raw }

// Action returns the action of the statement.
func (s *Statement) Action() Action { return s.action }

// Tree returns the parsed node tree of the statement.
func (s *Statement) Tree() *StatementTree { return s.tree }

// ParamXref returns the parameter cross-reference of the statement.
func (s *Statement) ParamXref() *ParameterXref { return s.xref }

// Build compiles the statement against the translator and resolves the
// argument values from the bindings.
func (s *Statement) Build(translator driver.Translator, bindings *ParameterBindings) (query string, args []any, err error) {
	query, params, err := s.tree.Compile(translator, s.xref, bindings)
	if err != nil {
		return "", nil, err
	}
	args = make([]any, 0, len(params))
	for _, param := range params {
		value, err := bindings.value(param.Name())
		if err != nil {
			return "", nil, err
		}
		args = append(args, value)
	}
	return query, args, nil
}

// parseStatement parses raw query text into a Statement.
func parseStatement(text string) (*Statement, error) {
	raw := strings.TrimSpace(text)
	if len(raw) == 0 {
		return nil, ErrEmptyQuery
	}
	tree, xref := parseTree(raw)
	return &Statement{
		raw:    raw,
		action: parseAction(raw),
		tree:   tree,
		xref:   xref,
	}, nil
}
