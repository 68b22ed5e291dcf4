package tally

import (
	"cmp"
	"slices"
)

// Bucket is a key with its occurrence count.
type Bucket[K comparable] struct {
	Key   K
	Count int
}

// Counter counts keys and remembers the order in which each key was first
// seen, so rankings break ties by first appearance.
type Counter[K comparable] struct {
	index   map[K]int
	buckets []Bucket[K]
}

// NewCounter creates an empty counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{index: make(map[K]int)}
}

// Add records one occurrence of k.
func (c *Counter[K]) Add(k K) { c.AddN(k, 1) }

// AddN records n occurrences of k.
func (c *Counter[K]) AddN(k K, n int) {
	i, ok := c.index[k]
	if !ok {
		i = len(c.buckets)
		c.index[k] = i
		c.buckets = append(c.buckets, Bucket[K]{Key: k})
	}
	c.buckets[i].Count += n
}

// AddAll records one occurrence of every key in ks.
func (c *Counter[K]) AddAll(ks []K) {
	for _, k := range ks {
		c.Add(k)
	}
}

// Get returns the count for k.
func (c *Counter[K]) Get(k K) int {
	if i, ok := c.index[k]; ok {
		return c.buckets[i].Count
	}
	return 0
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int { return len(c.buckets) }

// Sorted returns buckets by count descending; equal counts keep first-seen order.
func (c *Counter[K]) Sorted() []Bucket[K] {
	out := slices.Clone(c.buckets)
	slices.SortStableFunc(out, func(a, b Bucket[K]) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// Top returns the first n buckets of Sorted. n <= 0 returns all.
func (c *Counter[K]) Top(n int) []Bucket[K] {
	return head(c.Sorted(), n)
}

// SortedByKey returns buckets ordered by key; desc reverses the order.
func SortedByKey[K cmp.Ordered](c *Counter[K], desc bool) []Bucket[K] {
	out := slices.Clone(c.buckets)
	slices.SortFunc(out, func(a, b Bucket[K]) int {
		if desc {
			return cmp.Compare(b.Key, a.Key)
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

// Values counts raw values, skipping the empty string (null).
func Values(values []string) *Counter[string] {
	c := NewCounter[string]()
	for _, v := range values {
		if v != "" {
			c.Add(v)
		}
	}
	return c
}

// Exploded tokenizes every value and counts each token.
func Exploded(values []string) *Counter[string] {
	c := NewCounter[string]()
	for _, v := range values {
		c.AddAll(Tokens(v))
	}
	return c
}

func head[T any](s []T, n int) []T {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[:n]
}
