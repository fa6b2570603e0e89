package models

import (
	"fmt"
	"strings"
)

// code is the constraint shared by every categorical enumeration in this
// package. Each one is a closed set of wire codes.
type code interface {
	~string
	Valid() bool
}

// parseCode resolves text to a known code, accepting the wire value or one
// of its English aliases (case-insensitive).
func parseCode[T code](kind, text string, aliases map[string]T) (T, error) {
	candidate := T(strings.TrimSpace(text))
	if candidate.Valid() {
		return candidate, nil
	}
	lower := T(strings.ToLower(string(candidate)))
	if lower.Valid() {
		return lower, nil
	}
	if alias, ok := aliases[string(lower)]; ok {
		return alias, nil
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", kind, text)
}
