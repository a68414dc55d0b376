package class

import (
	"maps"
	"strings"
)

// ValidName reports whether name is a dot-qualified identifier such as
// "app.controller.player.Player".
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, seg := range strings.Split(name, ".") {
		if seg == "" {
			return false
		}
		for _, r := range seg {
			if !isNameRune(r) {
				return false
			}
		}
	}
	return true
}

func isNameRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// Namespace returns everything before the last segment of name.
func Namespace(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}

// Suffix strips the "ns." prefix from name. Names outside ns are returned
// unchanged.
func Suffix(name, ns string) string {
	if ns == "" {
		return name
	}
	if rest, ok := strings.CutPrefix(name, ns+"."); ok {
		return rest
	}
	return name
}

// Join builds a qualified name from a namespace and a suffix.
func Join(ns, suffix string) string {
	if ns == "" {
		return suffix
	}
	if suffix == "" {
		return ns
	}
	return ns + "." + suffix
}

// EntryClassKey is the key holding the class suffix in a declarative
// entry given as a config map.
const EntryClassKey = "cl"

// ParseEntry reads a declarative entry: either a bare class suffix, or a
// config map whose "cl" key holds the suffix. The returned config is a
// copy of the map, "cl" included.
func ParseEntry(entry any) (suffix string, cfg map[string]any, ok bool) {
	switch e := entry.(type) {
	case string:
		return e, nil, e != ""
	case map[string]any:
		cl, _ := e[EntryClassKey].(string)
		if cl == "" {
			return "", nil, false
		}
		return cl, maps.Clone(e), true
	default:
		return "", nil, false
	}
}

// EntryList normalizes a declarative list config: a single entry becomes
// a one-element list, nil becomes an empty list.
func EntryList(v any) []any {
	switch l := v.(type) {
	case nil:
		return nil
	case []any:
		return l
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out
	default:
		return []any{v}
	}
}
