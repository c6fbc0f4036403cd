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
	"fmt"
	"regexp"

	"github.com/ciderkit/cider/driver"
)

// paramRegex is a regular expression for bind parameters.
var paramRegex = regexp.MustCompile(`\#\{ *?([a-zA-Z0-9_\.]+) *?\}`)

// formatRegexp is a regular expression for text expansions.
var formatRegexp = regexp.MustCompile(`\$\{ *?([a-zA-Z0-9_\.]+) *?\}`)

// placeholderRegexp matches both placeholder forms, used to collect
// declared parameters in declaration order.
var placeholderRegexp = regexp.MustCompile(`[#$]\{ *?([a-zA-Z0-9_\.]+) *?\}`)

// Node is a node of SQL.
type Node interface {
	// Accept renders the node with the given translator and parameter
	// state, returning the SQL fragment and the parameters referenced
	// by its placeholders in placeholder order.
	Accept(translator driver.Translator, xref *ParameterXref, bindings *ParameterBindings) (fragment string, params []Parameter, err error)
}

var _ Node = (*TextNode)(nil)

// TextNode is a node of text.
// Bind parameters inside the text are rewritten with the translator.
type TextNode string

// Accept implements Node interface.
func (c TextNode) Accept(translator driver.Translator, xref *ParameterXref, _ *ParameterBindings) (fragment string, params []Parameter, err error) {
	fragment = paramRegex.ReplaceAllStringFunc(string(c), func(s string) string {
		if err != nil {
			return s
		}
		name := paramRegex.FindStringSubmatch(s)[1]
		param, exists := xref.Parameter(name)
		if !exists {
			err = fmt.Errorf("cider: parameter %s not found", name)
			return s
		}
		params = append(params, param)
		return translator.Translate(s)
	})
	return fragment, params, err
}

var _ Node = (*ExpansionNode)(nil)

// ExpansionNode is a node of a ${} expansion.
// It substitutes the bound value as raw text instead of binding a
// placeholder, which makes the resulting SQL value-dependent.
type ExpansionNode struct {
	name string
}

// Accept implements Node interface.
func (e *ExpansionNode) Accept(_ driver.Translator, _ *ParameterXref, bindings *ParameterBindings) (fragment string, params []Parameter, err error) {
	value, err := bindings.value(e.name)
	if err != nil {
		return "", nil, err
	}
	return literalOf(value), nil, nil
}

// StatementTree is the parsed representation of a statement's text.
type StatementTree struct {
	nodes      []Node
	expansions int
}

// HasExpansion reports whether the tree contains ${} expansions.
// Expanded statements produce value-dependent SQL and are therefore
// not eligible for plan caching.
func (t *StatementTree) HasExpansion() bool {
	return t.expansions > 0
}

// Compile renders the tree into dialect SQL and the referenced
// parameters in placeholder order.
func (t *StatementTree) Compile(translator driver.Translator, xref *ParameterXref, bindings *ParameterBindings) (query string, params []Parameter, err error) {
	var builder = getStringBuilder()
	defer putStringBuilder(builder)
	for _, node := range t.nodes {
		fragment, nodeParams, err := node.Accept(translator, xref, bindings)
		if err != nil {
			return "", nil, err
		}
		builder.WriteString(fragment)
		params = append(params, nodeParams...)
	}
	query = builder.String()
	if len(query) == 0 {
		return "", nil, ErrEmptyQuery
	}
	return query, params, nil
}

// parseTree splits the query text into text and expansion nodes and
// cross-references the declared bind parameters.
func parseTree(text string) (*StatementTree, *ParameterXref) {
	tree := new(StatementTree)
	xref := new(ParameterXref)

	locs := formatRegexp.FindAllStringSubmatchIndex(text, -1)
	var offset int
	for _, loc := range locs {
		if loc[0] > offset {
			tree.nodes = append(tree.nodes, TextNode(text[offset:loc[0]]))
		}
		tree.nodes = append(tree.nodes, &ExpansionNode{name: text[loc[2]:loc[3]]})
		tree.expansions++
		offset = loc[1]
	}
	if offset < len(text) {
		tree.nodes = append(tree.nodes, TextNode(text[offset:]))
	}

	for _, match := range placeholderRegexp.FindAllStringSubmatch(text, -1) {
		xref.add(match[1])
	}
	return tree, xref
}
