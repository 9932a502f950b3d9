package memory

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// --- Print buffers ---------------------------------------------------------

func printBuffer[T any](m Manager[T], ranges map[string][]T) string {
	header := fmt.Sprintf("\nManager(%s, allocator=%T)\n", m.Category(), m.Allocator())
	printer := tp.New()
	for name, r := range ranges {
		branch := printer.AddBranch(fmt.Sprintf("%s len=%d", name, len(r)))
		for i, x := range r {
			branch.AddNode(fmt.Sprintf("%d: %v", i, x))
		}
	}
	return header + printer.String() + "\n"
}
