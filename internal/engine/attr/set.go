package attr

import (
	"sort"
	"strings"
)

// Set is an immutable set of kinds. The zero value is the empty set.
type Set uint32

// NewSet returns a set holding the given kinds. Invalid kinds are ignored.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

// ParseSet builds a set from wire names. Unknown names are returned separately
// so the caller can report them.
func ParseSet(names []string) (Set, []string) {
	var s Set
	var unknown []string
	for _, n := range names {
		k, ok := Parse(n)
		if !ok || k == None {
			unknown = append(unknown, n)
			continue
		}
		s = s.With(k)
	}
	return s, unknown
}

// Has reports whether k is in the set.
func (s Set) Has(k Kind) bool {
	if !k.IsValid() {
		return false
	}
	return s&(1<<k) != 0
}

// With returns a copy of the set with k added.
func (s Set) With(k Kind) Set {
	if !k.IsValid() || k == None {
		return s
	}
	return s | 1<<k
}

// Without returns a copy of the set with k removed.
func (s Set) Without(k Kind) Set {
	if !k.IsValid() {
		return s
	}
	return s &^ (1 << k)
}

// Toggle returns a copy of the set with k flipped.
func (s Set) Toggle(k Kind) Set {
	if s.Has(k) {
		return s.Without(k)
	}
	return s.With(k)
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool { return s == 0 }

// Len returns the number of members.
func (s Set) Len() int {
	n := 0
	for k := None; k < kindCount; k++ {
		if s.Has(k) {
			n++
		}
	}
	return n
}

// Kinds returns the members in enumeration order.
func (s Set) Kinds() []Kind {
	var out []Kind
	for k := None; k < kindCount; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Names returns the sorted wire names of the members.
func (s Set) Names() []string {
	kinds := s.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	sort.Strings(out)
	return out
}

// String returns the members as a comma separated list.
func (s Set) String() string {
	return "{" + strings.Join(s.Names(), ",") + "}"
}
