package listview

import (
	"strconv"
	"strings"
)

// paramNames returns the URL query parameter names carrying a tab's page and
// search state. The primary tab of a view uses the bare names; secondary
// tabs prefix them with the camel-cased tab id, e.g. "asset-type" →
// "assetTypePage" / "assetTypeSearch".
func paramNames(tab string, primary bool) (pageParam, searchParam string) {
	if primary {
		return "page", "search"
	}
	prefix := camelize(tab)
	return prefix + "Page", prefix + "Search"
}

// camelize turns a hyphen/underscore separated tab id into a camelCase
// parameter prefix.
func camelize(id string) string {
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(parts) == 0 {
		return id
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(strings.ToLower(p[1:]))
	}
	return b.String()
}

// parsePage reads a page parameter strictly: anything that is not a positive
// integer reads as page 1, so a mangled shared URL still renders.
func parsePage(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 {
		return 1
	}
	return v
}
