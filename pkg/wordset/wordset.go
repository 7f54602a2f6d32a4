// Package wordset provides a small set type for base-form words.
package wordset

import "sort"

// Set is an unordered collection of distinct words.
type Set map[string]struct{}

// New returns a set holding the given words.
func New(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts w into the set.
func (s Set) Add(w string) {
	s[w] = struct{}{}
}

// Has reports whether w is a member of the set.
func (s Set) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// Len returns the number of words in the set.
func (s Set) Len() int { return len(s) }

// Union returns a new set with the members of both s and other.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for w := range s {
		out.Add(w)
	}
	for w := range other {
		out.Add(w)
	}
	return out
}

// Difference returns a new set with the members of s that are not in other.
func (s Set) Difference(other Set) Set {
	out := make(Set, len(s))
	for w := range s {
		if !other.Has(w) {
			out.Add(w)
		}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
