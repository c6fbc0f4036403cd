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

// Package reflectutil provides optional structural access to opaque
// values: field reads and method calls by name that report absence
// instead of failing. Shape mismatches, missing names and reflection
// panics all surface as ok == false, never as an error or a panic.
package reflectutil

import (
	"reflect"
	"unsafe"
)

// Unwrap returns the value pointed or abstracted to by v.
// It stops at the first nil pointer or nil interface.
func Unwrap(v reflect.Value) reflect.Value {
	for {
		switch {
		case v.Kind() == reflect.Ptr && !v.IsNil():
			v = v.Elem()
		case v.Kind() == reflect.Interface && !v.IsNil():
			v = v.Elem()
		default:
			return v
		}
	}
}

// IsNil reports whether v is nil or holds a nil value of a nilable kind.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// FieldValue returns the value of the named field of obj.
// It reaches through pointers and interfaces, and reads unexported
// fields by re-homing the struct into addressable memory.
func FieldValue(obj any, name string) (value any, ok bool) {
	defer func() {
		if recover() != nil {
			value, ok = nil, false
		}
	}()
	if IsNil(obj) {
		return nil, false
	}
	rv := Unwrap(reflect.ValueOf(obj))
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	field := rv.FieldByName(name)
	if !field.IsValid() {
		return nil, false
	}
	if field.CanInterface() {
		return field.Interface(), true
	}
	if !field.CanAddr() {
		addressable := reflect.New(rv.Type()).Elem()
		addressable.Set(rv)
		field = addressable.FieldByName(name)
	}
	field = reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
	return field.Interface(), true
}

// InvokeMethod calls the named method of obj with the given arguments.
//
// Absent methods, argument shape mismatches and variadic methods all
// report ok == false. When the method follows the error-last return
// convention, a non-nil error also reports ok == false; otherwise the
// first return value is returned, or nil for a void method.
func InvokeMethod(obj any, name string, args ...any) (result any, ok bool) {
	defer func() {
		if recover() != nil {
			result, ok = nil, false
		}
	}()
	if IsNil(obj) {
		return nil, false
	}
	method := reflect.ValueOf(obj).MethodByName(name)
	if !method.IsValid() {
		return nil, false
	}
	mt := method.Type()
	if mt.IsVariadic() || mt.NumIn() != len(args) {
		return nil, false
	}
	in := make([]reflect.Value, 0, len(args))
	for i, arg := range args {
		if arg == nil {
			in = append(in, reflect.Zero(mt.In(i)))
			continue
		}
		av := reflect.ValueOf(arg)
		if !av.Type().AssignableTo(mt.In(i)) {
			return nil, false
		}
		in = append(in, av)
	}
	out := method.Call(in)
	if n := len(out); n > 0 && mt.Out(n-1) == errorType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return nil, false
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil, true
	}
	return out[0].Interface(), true
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()
