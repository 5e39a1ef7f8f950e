package domain

// Resource identifies one of the five tradeable resource types.
type Resource string

const (
	Wood  Resource = "wood"
	Brick Resource = "brick"
	Sheep Resource = "sheep"
	Wheat Resource = "wheat"
	Ore   Resource = "ore"
)

// ResourceTypes lists all resources in canonical order. Iteration over
// ResourceSet maps must go through this slice to stay deterministic.
var ResourceTypes = []Resource{Wood, Brick, Sheep, Wheat, Ore}

// ResourceSet maps a resource type to a held or required quantity.
// Absent keys mean zero.
type ResourceSet map[Resource]int

// NewResourceSet returns an empty set ready for mutation.
func NewResourceSet() ResourceSet {
	return make(ResourceSet, len(ResourceTypes))
}

// Total returns the summed count across all resource types.
func (s ResourceSet) Total() int {
	total := 0
	for _, r := range ResourceTypes {
		total += s[r]
	}
	return total
}

// Clone returns an independent copy of the set.
func (s ResourceSet) Clone() ResourceSet {
	out := NewResourceSet()
	for _, r := range ResourceTypes {
		if s[r] != 0 {
			out[r] = s[r]
		}
	}
	return out
}

// Add merges other into the set.
func (s ResourceSet) Add(other ResourceSet) {
	for _, r := range ResourceTypes {
		if other[r] != 0 {
			s[r] += other[r]
		}
	}
}

// Subtract removes other from the set, clamping each count at zero.
func (s ResourceSet) Subtract(other ResourceSet) {
	for _, r := range ResourceTypes {
		if other[r] == 0 {
			continue
		}
		s[r] -= other[r]
		if s[r] < 0 {
			s[r] = 0
		}
	}
}

// Covers reports whether the set holds at least the quantities in want.
func (s ResourceSet) Covers(want ResourceSet) bool {
	for _, r := range ResourceTypes {
		if s[r] < want[r] {
			return false
		}
	}
	return true
}

// Deficit returns, per resource, how much of want is not covered by have.
func Deficit(have, want ResourceSet) ResourceSet {
	out := NewResourceSet()
	for _, r := range ResourceTypes {
		if d := want[r] - have[r]; d > 0 {
			out[r] = d
		}
	}
	return out
}

// DeficitTotal returns the summed resource shortfall of have against want.
func DeficitTotal(have, want ResourceSet) int {
	return Deficit(have, want).Total()
}
