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

import "fmt"

// Parameter describes a parameter declared by a statement.
type Parameter interface {
	// Name returns the declared name of the parameter.
	Name() string

	// Position returns the 1-based declaration position of the parameter.
	Position() int
}

// queryParameter is the parameter implementation built by the statement
// parser.
type queryParameter struct {
	name     string
	position int
}

func (p *queryParameter) Name() string { return p.name }

func (p *queryParameter) Position() int { return p.position }

// ParameterXref cross-references the parameters declared by a statement
// by name and by position.
type ParameterXref struct {
	params []Parameter
	byName map[string]Parameter
}

// add registers a declared parameter name.
// Re-declaring a name keeps the original position.
func (x *ParameterXref) add(name string) Parameter {
	if p, ok := x.byName[name]; ok {
		return p
	}
	if x.byName == nil {
		x.byName = make(map[string]Parameter)
	}
	p := &queryParameter{name: name, position: len(x.params) + 1}
	x.params = append(x.params, p)
	x.byName[name] = p
	return p
}

// Parameter returns the declared parameter with the given name.
func (x *ParameterXref) Parameter(name string) (Parameter, bool) {
	p, ok := x.byName[name]
	return p, ok
}

// ByPosition returns the declared parameter with the given position.
func (x *ParameterXref) ByPosition(position int) (Parameter, bool) {
	if position < 1 || position > len(x.params) {
		return nil, false
	}
	return x.params[position-1], true
}

// Parameters returns the declared parameters in declaration order.
func (x *ParameterXref) Parameters() []Parameter {
	params := make([]Parameter, len(x.params))
	copy(params, x.params)
	return params
}

// Len returns the number of declared parameters.
func (x *ParameterXref) Len() int { return len(x.params) }

// ParameterBinding holds the value bound to a single parameter.
type ParameterBinding struct {
	parameter Parameter
	value     any
}

// Parameter returns the parameter this binding belongs to.
func (b *ParameterBinding) Parameter() Parameter { return b.parameter }

// BindValue returns the bound value.
func (b *ParameterBinding) BindValue() any { return b.value }

// ParameterBindings collects the values bound to a query handle.
// Bindings are visited in bind order; rebinding a parameter replaces
// its value but keeps its original slot.
type ParameterBindings struct {
	ordered []*ParameterBinding
	byName  map[string]*ParameterBinding
}

// Bind binds the value to the given parameter.
func (b *ParameterBindings) Bind(parameter Parameter, value any) {
	if existing, ok := b.byName[parameter.Name()]; ok {
		existing.value = value
		return
	}
	if b.byName == nil {
		b.byName = make(map[string]*ParameterBinding)
	}
	binding := &ParameterBinding{parameter: parameter, value: value}
	b.ordered = append(b.ordered, binding)
	b.byName[parameter.Name()] = binding
}

// Binding returns the binding for the parameter with the given name.
func (b *ParameterBindings) Binding(name string) (*ParameterBinding, bool) {
	if b == nil {
		return nil, false
	}
	binding, ok := b.byName[name]
	return binding, ok
}

// VisitBindings calls fn for each binding in bind order.
func (b *ParameterBindings) VisitBindings(fn func(Parameter, *ParameterBinding)) {
	for _, binding := range b.ordered {
		fn(binding.parameter, binding)
	}
}

// Len returns the number of bindings.
func (b *ParameterBindings) Len() int { return len(b.ordered) }

// value returns the value bound to the named parameter.
func (b *ParameterBindings) value(name string) (any, error) {
	binding, ok := b.Binding(name)
	if !ok {
		return nil, fmt.Errorf("cider: parameter %s is not bound", name)
	}
	return binding.value, nil
}
