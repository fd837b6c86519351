package ranking

import (
	"math"
	"sort"
)

// Ranked pairs an item with its accuracy.
type Ranked[T any] struct {
	Item     T
	Accuracy float64
}

// Rank deduplicates items by key and orders them by descending score.
//
// The first item seen for a key wins and later ones are dropped without being scored.
// Equal scores keep their input order; NaN scores go last.
func Rank[T any](items []T, key func(T) string, score func(T) float64) []Ranked[T] {
	seen := make(map[string]struct{}, len(items))
	ranked := make([]Ranked[T], 0, len(items))

	for _, item := range items {
		k := key(item)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		ranked = append(ranked, Ranked[T]{Item: item, Accuracy: score(item)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return higher(ranked[i].Accuracy, ranked[j].Accuracy)
	})
	return ranked
}

func higher(a, b float64) bool {
	switch {
	case math.IsNaN(a):
		return false
	case math.IsNaN(b):
		return true
	default:
		return a > b
	}
}
