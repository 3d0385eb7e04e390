package feedback

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(counts))
	for _, key := range slices.Sorted(maps.Keys(counts)) {
		parts = append(parts, fmt.Sprintf("%s=%d", key, counts[key]))
	}

	return strings.Join(parts, ", ")
}
