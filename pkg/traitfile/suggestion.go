package traitfile

import (
	"fmt"
	"strings"
)

// suggestName proposes a fix for an unknown name by edit distance against
// the known ones. Distances of five or more are noise, so those fall back
// to listing valid names instead.
func suggestName(unknown string, known []string) string {
	if len(known) == 0 {
		return ""
	}

	best := ""
	bestDist := 1000
	for _, name := range known {
		if d := editDistance(unknown, name); d < bestDist {
			bestDist = d
			best = name
		}
	}

	if bestDist < 5 {
		return fmt.Sprintf("did you mean '%s'?", best)
	}
	if len(known) > 5 {
		return fmt.Sprintf("valid names include: %s, ...", strings.Join(known[:5], ", "))
	}
	return fmt.Sprintf("valid names: %s", strings.Join(known, ", "))
}

// editDistance is the Levenshtein distance between two strings.
func editDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}
