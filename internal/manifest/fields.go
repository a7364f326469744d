package manifest

import (
	"encoding/json"
	"math"
	"strconv"
)

// The accessors below are total: any JSON value, including nil or a value of
// the wrong type, yields the field's default instead of an error.

func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func list(v any) []any {
	l, _ := v.([]any)
	return l
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func str(m map[string]any, key string) string {
	return scalarString(m[key])
}

// firstStr returns the first non-empty string field among keys.
func firstStr(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := str(m, key); s != "" {
			return s
		}
	}
	return ""
}

func boolean(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

func intPtr(m map[string]any, key string) *int {
	f, ok := m[key].(float64)
	if !ok || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}

// stringify renders an arbitrary JSON value as a message string.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case float64, bool:
		return scalarString(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func stringList(v any) []string {
	items := list(v)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, stringify(item))
	}
	return out
}
