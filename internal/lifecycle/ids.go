package lifecycle

import (
	"fmt"
	"strconv"
	"strings"
)

// NextID derives the next sequential identifier for a collection. It scans the
// existing ids for PREFIX-NNN matches, takes the maximum numeric suffix and
// returns PREFIX-(max+1) zero-padded to three digits. Malformed ids are
// ignored; an empty collection yields PREFIX-001. There is no counter state,
// so replaying the same collection always reproduces the same answer.
func NextID(existing []string, prefix string) string {
	max := 0
	marker := prefix + "-"
	for _, id := range existing {
		if !strings.HasPrefix(id, marker) {
			continue
		}
		n, err := strconv.Atoi(id[len(marker):])
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}
