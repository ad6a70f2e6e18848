package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes an exported struct field shown by the inspector.
type FieldInfo struct {
	Name  string
	Type  reflect.Type
	Index int
}

var fieldCache sync.Map // reflect.Type -> []FieldInfo

// Fields returns the exported fields of t, or nil when t is not a struct.
func Fields(t reflect.Type) []FieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]FieldInfo)
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{Name: f.Name, Type: f.Type, Index: i})
		}
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]FieldInfo)
}

// SetField replaces the value at path inside a copy of component and returns the copy.
// An empty path replaces the whole component. value is converted to the field type.
func SetField(component any, path []int, value any) any {
	cur := reflect.ValueOf(component)
	if cur.Kind() == reflect.Ptr {
		cur = cur.Elem()
	}
	cp := reflect.New(cur.Type()).Elem()
	cp.Set(cur)

	target := cp
	if len(path) > 0 {
		target = cp.FieldByIndex(path)
	}
	target.Set(reflect.ValueOf(value).Convert(target.Type()))
	return cp.Interface()
}
