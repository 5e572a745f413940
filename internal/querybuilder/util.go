package querybuilder

import "sort"

// sortedKeys returns the keys of m in ascending order. Document building
// needs a stable iteration order over Go maps to produce deterministic
// output; this narrow request model (unlike the real NDC wire JSON) does
// not preserve field-map insertion order, so sorting stands in for it.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
