// Package instrument provides the logging side of the call-instrumentation decorators that
// tools/instrumentgen generates for step and dispatcher interfaces.
//
// A generated decorator holds a Tracer for the value it wraps. Before forwarding each exported
// method it calls Tracer.Call, which writes one "<ConcreteType>.<Method>()" line at Info level.
// The decorator forwards arguments and results untouched, so a failing call fails with exactly
// the error the wrapped value returned.
package instrument

import (
	"reflect"
	"sort"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

// Tracer logs calls made on one wrapped value.
type Tracer struct {
	typeName string
	loggers  ldlog.Loggers
}

// NewTracer returns a Tracer named after the concrete type of target. Methods that target gets
// from an embedded struct are therefore logged under target's own type name.
func NewTracer(target interface{}, loggers ldlog.Loggers) Tracer {
	return Tracer{typeName: ConcreteName(target), loggers: loggers}
}

// Call logs the invocation of method. It is called synchronously, before the wrapped method runs.
func (t Tracer) Call(method string) {
	t.loggers.Info(Signature(t.typeName, method))
}

// TypeName returns the name used in log lines.
func (t Tracer) TypeName() string {
	return t.typeName
}

// Signature formats the log line for one call.
func Signature(typeName, method string) string {
	return typeName + "." + method + "()"
}

// ConcreteName returns the name of target's dynamic type, with pointers removed.
func ConcreteName(target interface{}) string {
	t := reflect.TypeOf(target)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "<nil>"
	}
	return t.Name()
}

// ExportedMethods returns the sorted names of the exported methods of target's method set,
// including methods promoted from embedded fields.
func ExportedMethods(target interface{}) []string {
	return methodNames(reflect.TypeOf(target))
}

// InterfaceMethods returns the sorted exported method names of the interface that ifacePtr
// points to, for example InterfaceMethods((*steps.Pets)(nil)).
func InterfaceMethods(ifacePtr interface{}) []string {
	t := reflect.TypeOf(ifacePtr)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Interface {
		return nil
	}
	return methodNames(t.Elem())
}

func methodNames(t reflect.Type) []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		if m := t.Method(i); m.IsExported() {
			names = append(names, m.Name)
		}
	}
	sort.Strings(names)
	return names
}
