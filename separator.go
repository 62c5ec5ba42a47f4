package wikirt

// Constraint bounds the number of newlines required between two adjacent
// serialized outputs. A nil bound is unconstrained in that direction.
type Constraint struct {
	Min *int
	Max *int
}

// Unconstrained reports whether the constraint specifies no bound at all.
func (c Constraint) Unconstrained() bool {
	return c.Min == nil && c.Max == nil
}

// AtLeast returns a constraint with only a lower bound.
func AtLeast(n int) Constraint { return Constraint{Min: &n} }

// AtMost returns a constraint with only an upper bound.
func AtMost(n int) Constraint { return Constraint{Max: &n} }

// Between returns a constraint with both bounds.
func Between(min, max int) Constraint { return Constraint{Min: &min, Max: &max} }

// Exactly returns a constraint forcing precisely n newlines.
func Exactly(n int) Constraint { return Between(n, n) }

// NoConstraint returns the unconstrained constraint.
func NoConstraint() Constraint { return Constraint{} }

// CombineConstraints resolves the boundary between two adjacent nodes: the
// left node's After constraint against the right node's Before constraint.
// The newline count is the larger of the two minimums, clamped from above
// by the smaller of the two maximums when both sides specify one. When
// neither side specifies any bound, forced is false and the serializer
// falls back to contextual default spacing.
func CombineConstraints(after, before Constraint) (count int, forced bool) {
	if after.Unconstrained() && before.Unconstrained() {
		return 0, false
	}

	count = 0
	if after.Min != nil {
		count = *after.Min
	}
	if before.Min != nil && *before.Min > count {
		count = *before.Min
	}

	if after.Max != nil && before.Max != nil {
		upper := *after.Max
		if *before.Max < upper {
			upper = *before.Max
		}
		if count > upper {
			count = upper
		}
	}
	return count, true
}
