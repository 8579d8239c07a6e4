package mapreduce

import (
	"fmt"
	"io"
	"sort"
)

type kv struct {
	Key   string
	Value int
}

// ranked sorts counts by value descending, then key ascending, and keeps at most n.
func ranked(counts map[string]int, n int) []kv {
	ss := make([]kv, 0, len(counts))
	for k, v := range counts {
		if k != "" {
			ss = append(ss, kv{k, v})
		}
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	if n < 0 {
		n = 0
	}
	if len(ss) > n {
		ss = ss[:n]
	}
	return ss
}

// TopWords returns the top N words from aggregated counts as formatted strings.
// Each string is formatted as "word:count" (e.g., "cad:12").
func TopWords(counts map[string]int, n int) []string {
	ss := ranked(counts, n)
	words := make([]string, len(ss))
	for i, e := range ss {
		words[i] = fmt.Sprintf("%s:%d", e.Key, e.Value)
	}
	return words
}

// PrintTopWords writes the top N words to w as a numbered list.
func PrintTopWords(w io.Writer, counts map[string]int, n int) {
	for i, e := range ranked(counts, n) {
		fmt.Fprintf(w, "%d. %s: %d\n", i+1, e.Key, e.Value)
	}
}
