package graph

import (
	"fmt"
	"strings"
)

// CycleError reports a circular reference chain. Chain holds the ordered
// names along the loop, closed by repeating the first name, e.g. [a b c a].
type CycleError struct {
	Chain []string
}

func (e CycleError) Error() string {
	if len(e.Chain) == 0 {
		return "circular reference detected"
	}
	return fmt.Sprintf("circular reference detected: %s", strings.Join(e.Chain, " -> "))
}
