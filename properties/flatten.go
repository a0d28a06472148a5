package properties

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Flatten converts a nested tree into flat property paths.
// Maps contribute dotted segments, slices contribute index tokens and scalars
// are rendered with fmt.Sprint. A nil leaf becomes the empty string.
// Keys are walked in sorted order, so when the same path is produced twice the
// later (lexically greater) source key wins.
func Flatten(tree map[string]any) map[string]string {
	flat := map[string]string{}

	flattenMap(flat, "", tree)

	return flat
}

func flattenMap(flat map[string]string, prefix string, tree map[string]any) {
	for _, key := range slices.Sorted(maps.Keys(tree)) {
		flattenValue(flat, Join(prefix, key), tree[key])
	}
}

func flattenValue(flat map[string]string, path string, value any) {
	switch typed := value.(type) {
	case map[string]any:
		if len(typed) == 0 {
			flat[path] = ""

			return
		}

		flattenMap(flat, path, typed)
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for key, nested := range typed {
			converted[fmt.Sprint(key)] = nested
		}

		flattenValue(flat, path, converted)
	case []any:
		if len(typed) == 0 {
			flat[path] = ""

			return
		}

		for i, nested := range typed {
			flattenValue(flat, path+Index(strconv.Itoa(i)), nested)
		}
	case nil:
		flat[path] = ""
	default:
		flat[path] = fmt.Sprint(typed)
	}
}
