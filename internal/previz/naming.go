package previz

import (
	"strconv"
	"strings"
)

// CopyName derives the name of a duplicated element.
//
// Grammar: an optional "Copy" suffix followed by an optional integer.
//
//	"Key Light"        -> "Key Light Copy"
//	"Key Light Copy"   -> "Key Light Copy 2"
//	"Key Light Copy 7" -> "Key Light Copy 8"
func CopyName(name string) string {
	if name == "Copy" || strings.HasSuffix(name, " Copy") {
		return name + " 2"
	}

	if i := strings.LastIndexByte(name, ' '); i >= 0 {
		if n, err := strconv.Atoi(name[i+1:]); err == nil {
			base := name[:i]
			if base == "Copy" || strings.HasSuffix(base, " Copy") {
				return base + " " + strconv.Itoa(n+1)
			}
		}
	}

	return name + " Copy"
}

// duplicateOffset is the position offset applied to a duplicated element:
// (2, 2) for cameras, (1, 1) for everything else.
func duplicateOffset(kind Kind) (dx, dy float64) {
	if kind == KindCamera {
		return 2, 2
	}
	return 1, 1
}
