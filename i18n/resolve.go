package i18n

import (
	"reflect"
	"strings"
	"sync"
)

// Text returns the {field}_{lang} value of record, falling back to
// {field}_en and then to "". Only nil or missing values fall back; an empty
// string is a value. Record may be a struct, a pointer to one, or a
// map[string]any keyed by column name.
func Text(record any, lang Language, field string) string {
	if v, ok := lookupString(record, field+"_"+normalize(lang).String()); ok {
		return v
	}
	if v, ok := lookupString(record, field+"_"+Default.String()); ok {
		return v
	}
	return ""
}

// List is Text for ordered string lists. The default is an empty list and an
// empty non-nil list is a value.
func List(record any, lang Language, field string) []string {
	if v, ok := lookupList(record, field+"_"+normalize(lang).String()); ok {
		return v
	}
	if v, ok := lookupList(record, field+"_"+Default.String()); ok {
		return v
	}
	return []string{}
}

func normalize(lang Language) Language {
	for _, l := range supported {
		if l == lang {
			return lang
		}
	}
	return Default
}

func lookupString(record any, name string) (string, bool) {
	v, ok := lookup(record, name)
	if !ok {
		return "", false
	}
	if v.Kind() != reflect.String {
		return "", false
	}
	return v.String(), true
}

func lookupList(record any, name string) ([]string, bool) {
	v, ok := lookup(record, name)
	if !ok || v.Kind() != reflect.Slice {
		return nil, false
	}
	if v.IsNil() {
		return nil, false
	}
	out := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := indirect(v.Index(i))
		if !item.IsValid() || item.Kind() != reflect.String {
			return nil, false
		}
		out = append(out, item.String())
	}
	return out, true
}

// lookup returns the dereferenced, non-nil value named name.
func lookup(record any, name string) (reflect.Value, bool) {
	if record == nil {
		return reflect.Value{}, false
	}
	rv := indirect(reflect.ValueOf(record))
	if !rv.IsValid() {
		return reflect.Value{}, false
	}

	var field reflect.Value
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		field = rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
	case reflect.Struct:
		index, ok := fieldIndex(rv.Type(), name)
		if !ok {
			return reflect.Value{}, false
		}
		field = rv.FieldByIndex(index)
	default:
		return reflect.Value{}, false
	}

	field = indirect(field)
	if !field.IsValid() {
		return reflect.Value{}, false
	}
	return field, true
}

// indirect unwraps pointers and interfaces, returning the zero Value for nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

var fieldIndexes sync.Map // reflect.Type -> map[string][]int

// fieldIndex locates a struct field by its json name, including fields
// promoted from embedded structs.
func fieldIndex(t reflect.Type, name string) ([]int, bool) {
	cached, ok := fieldIndexes.Load(t)
	if !ok {
		indexes := make(map[string][]int)
		collectFields(t, nil, indexes)
		cached, _ = fieldIndexes.LoadOrStore(t, indexes)
	}
	index, ok := cached.(map[string][]int)[name]
	return index, ok
}

func collectFields(t reflect.Type, prefix []int, indexes map[string][]int) {
	var embedded []int
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			embedded = append(embedded, i)
			continue
		}
		if !f.IsExported() {
			continue
		}
		jsonName := strings.Split(f.Tag.Get("json"), ",")[0]
		if jsonName == "-" {
			continue
		}
		if jsonName == "" {
			jsonName = f.Name
		}
		if _, exists := indexes[jsonName]; !exists {
			indexes[jsonName] = append(append([]int{}, prefix...), i)
		}
	}
	// outer fields shadow promoted ones
	for _, i := range embedded {
		collectFields(t.Field(i).Type, append(append([]int{}, prefix...), i), indexes)
	}
}
