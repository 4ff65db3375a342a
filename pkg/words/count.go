package words

import (
	"cmp"
	"slices"
)

// Frequency is a word and the number of times it occurred.
type Frequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Count tallies words and returns one Frequency per distinct word, ordered by
// descending count and then alphabetically.
func Count(words []string) []Frequency {
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}
	out := make([]Frequency, 0, len(counts))
	for w, n := range counts {
		out = append(out, Frequency{Word: w, Count: n})
	}
	Sort(out)
	return out
}

// Sort orders freqs by descending count, then ascending word.
func Sort(freqs []Frequency) {
	slices.SortFunc(freqs, func(a, b Frequency) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
}

// Top returns the first n frequencies. n <= 0 returns freqs unchanged.
func Top(freqs []Frequency, n int) []Frequency {
	if n <= 0 || n >= len(freqs) {
		return freqs
	}
	return freqs[:n]
}

// Total returns the sum of all counts.
func Total(freqs []Frequency) int {
	total := 0
	for _, f := range freqs {
		total += f.Count
	}
	return total
}
