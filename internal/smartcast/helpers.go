package smartcast

import "strings"

// getCaseInsensitive returns the value for the first key in m matching
// key case-insensitively. SmartCast firmware is inconsistent about the
// casing of response keys, so every response field access goes through
// here rather than indexing the map directly.
func getCaseInsensitive(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// getMap extracts a nested JSON object, returning an empty map when the
// key is absent or holds a non-object value
func getMap(m map[string]any, key string) map[string]any {
	v, ok := getCaseInsensitive(m, key)
	if !ok {
		return map[string]any{}
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return sub
}

// getString extracts a string field, nil when absent or not a string
func getString(m map[string]any, key string) *string {
	v, ok := getCaseInsensitive(m, key)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// getInt extracts an integer field. JSON numbers decode as float64, but
// ints are tolerated for callers that build maps by hand.
func getInt(m map[string]any, key string) *int {
	v, ok := getCaseInsensitive(m, key)
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case int:
		return &n
	}
	return nil
}
