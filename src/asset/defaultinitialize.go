package asset

import (
	"reflect"
)

// callAllDefaultInitializers walks obj depth first and calls
// DefaultInitialize on every exported field, slice element and map value
// that implements DefaultInitializer, then on obj itself.  Children are
// initialized before their parents so a parent may rely on them.
func callAllDefaultInitializers(obj any) {
	if obj == nil {
		return
	}
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return
	}
	initializeValue(reflect.Indirect(v))
	if di, ok := obj.(DefaultInitializer); ok {
		di.DefaultInitialize()
	}
}

func initializeValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).IsExported() {
				initializeChild(v.Field(i))
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			initializeChild(v.Index(i))
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			// map values are not addressable, only pointer values can be initialized in place
			if iter.Value().Kind() == reflect.Pointer {
				initializeChild(iter.Value())
			}
		}
	}
}

func initializeChild(v reflect.Value) {
	switch {
	case v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer:
		if !v.IsNil() {
			callAllDefaultInitializers(v.Interface())
		}
	case v.CanAddr():
		callAllDefaultInitializers(v.Addr().Interface())
	default:
		initializeValue(v)
	}
}
