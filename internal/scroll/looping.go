package scroll

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// KeyFunc derives a stable identity for an item.
type KeyFunc[T any] func(item T, index int) string

// Rendered is one entry of the derived, possibly duplicated, sequence.
type Rendered[T any] struct {
	Key   string
	Index int // position in the original items
	Copy  int // 0 for the original copy
	Item  T
}

// BuildLoop returns copies back-to-back repetitions of items. Keys come
// from key when given, else from the item index, and always carry the copy
// index so they stay unique across copies.
func BuildLoop[T any](items []T, copies int, key KeyFunc[T]) []Rendered[T] {
	if len(items) == 0 {
		return nil
	}
	if copies < 1 {
		copies = 1
	}
	out := make([]Rendered[T], 0, len(items)*copies)
	for c := 0; c < copies; c++ {
		for i, item := range items {
			base := strconv.Itoa(i)
			if key != nil {
				base = key(item, i)
			}
			out = append(out, Rendered[T]{
				Key:   base + "#" + strconv.Itoa(c),
				Index: i,
				Copy:  c,
				Item:  item,
			})
		}
	}
	return out
}

// FieldKey builds a KeyFunc reading a named field from struct items or a
// named key from map items. Struct fields match by name or by json/yaml
// tag, case-insensitively. Items without the field fall back to their
// index. The name "." keys items by their own formatted value.
func FieldKey[T any](name string) KeyFunc[T] {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return func(item T, index int) string {
		if name == "." {
			return fmt.Sprint(item)
		}
		if v, ok := lookupField(reflect.ValueOf(item), name); ok {
			return fmt.Sprint(v.Interface())
		}
		return strconv.Itoa(index)
	}
}

func lookupField(v reflect.Value, name string) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		got := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !got.IsValid() {
			return reflect.Value{}, false
		}
		return got, true
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if strings.EqualFold(f.Name, name) || tagName(f.Tag.Get("json")) == name || tagName(f.Tag.Get("yaml")) == name {
				return v.Field(i), true
			}
		}
	}
	return reflect.Value{}, false
}

func tagName(tag string) string {
	if i := strings.IndexByte(tag, ','); i >= 0 {
		return tag[:i]
	}
	return tag
}
