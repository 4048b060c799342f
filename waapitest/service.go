package waapitest

import (
	"context"
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	argsType    = reflect.TypeOf(map[string]any(nil))
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// scanNamespace collects the exported methods of rcvr that look like
//
//	func (r *T) GetInfo(ctx context.Context, args map[string]any) (map[string]any, error)
//
// and binds each one to "<prefix>.<lowerCamelName>", e.g. "ak.wwise.core.getInfo".
func scanNamespace(prefix string, rcvr any) (map[string]HandlerFunc, error) {
	typ := reflect.TypeOf(rcvr)
	if typ == nil || typ.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("waapitest: rcvr must be a pointer, got %v", typ)
	}
	val := reflect.ValueOf(rcvr)

	handlers := make(map[string]HandlerFunc)
	for i := 0; i < typ.NumMethod(); i++ {
		method := typ.Method(i)
		mt := method.Type
		if mt.NumIn() != 3 || mt.NumOut() != 2 ||
			mt.In(1) != contextType || mt.In(2) != argsType ||
			mt.Out(0) != argsType || mt.Out(1) != errorType {
			continue
		}

		fn := val.Method(i)
		handlers[prefix+"."+lowerFirst(method.Name)] = func(ctx context.Context, args map[string]any) (map[string]any, error) {
			out := fn.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(args)})
			var err error
			if !out[1].IsNil() {
				err = out[1].Interface().(error)
			}
			return out[0].Interface().(map[string]any), err
		}
	}

	if len(handlers) == 0 {
		return nil, fmt.Errorf("waapitest: %s has no handler methods", typ)
	}
	return handlers, nil
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
