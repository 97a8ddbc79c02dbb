package taxonomy

import (
	"fmt"
	"strings"
)

// PromptContext formats taxonomy entries for inclusion in an analysis
// prompt, one entry per line as "ID <id>: Tier1 | Tier2 | ...".
func PromptContext(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "ID %s: %s\n", e.ID, e.Path())
	}
	return b.String()
}
