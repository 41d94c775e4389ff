package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field of a component struct.
type FieldInfo struct {
	Name  string
	Type  reflect.Type
	Index int
}

type reflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

var fieldCache = &reflectionCache{fields: make(map[reflect.Type][]FieldInfo)}

// Fields returns the exported fields of struct type t, or nil for other kinds.
func Fields(t reflect.Type) []FieldInfo {
	return fieldCache.get(t)
}

func (rc *reflectionCache) get(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{Name: field.Name, Type: field.Type, Index: i})
		}
	}

	rc.fields[t] = fields
	return fields
}
