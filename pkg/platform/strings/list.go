// Package strings provides string helpers shared by config and CLI parsing.
package strings

import (
	"strings"
)

// SplitList splits a comma separated value, trimming each element and dropping
// empties and repeats. Order of first appearance is kept. Returns nil when
// nothing remains.
//
//	SplitList(" kafka-1:9092, ,kafka-2:9092,kafka-1:9092")
//	// []string{"kafka-1:9092", "kafka-2:9092"}
func SplitList(raw string) []string {
	var out []string
	seen := map[string]struct{}{}
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}
