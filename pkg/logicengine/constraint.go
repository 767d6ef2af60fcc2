package logicengine

// ArithConstraint is a ternary linear constraint x + y = z over TermIds,
// per spec.md §4.3. Each operand may resolve to a concrete Int or remain
// an unbound variable.
type ArithConstraint struct {
	X, Y, Z TermId
}

// ConstraintStore holds the set of arithmetic constraints parked because
// fewer than two of their operands were concrete the last time they were
// checked. Like Subst, it is a value: forking a search State copies the
// slice header, not the underlying array, and Post/Propagate always
// return a new store rather than mutating in place, so sibling branches
// never observe each other's propagation.
type ConstraintStore struct {
	pending []ArithConstraint
}

// resolveInt returns the concrete int32 value of t under s, if t walks to
// a KindInt term.
func resolveInt(ts *TermStore, s *Subst, t TermId) (int32, bool) {
	t = Walk(ts, s, t)
	term := ts.Get(t)
	if term.Kind != KindInt {
		return 0, false
	}
	return term.Int, true
}

// Post adds constraint c to the store and propagates to fixpoint,
// returning the (possibly further-extended) substitution, the updated
// store, and whether the result is consistent.
func (cs ConstraintStore) Post(ts *TermStore, s *Subst, c ArithConstraint) (*Subst, ConstraintStore, bool) {
	next := make([]ArithConstraint, len(cs.pending), len(cs.pending)+1)
	copy(next, cs.pending)
	next = append(next, c)
	return ConstraintStore{pending: next}.Propagate(ts, s)
}

// Propagate re-checks every parked constraint against s, repeating until
// a full pass makes no further progress (fixpoint) or a concrete triple
// turns out inconsistent. This re-scan is the store's stand-in for a
// watched-variable registry (spec.md §9 suggests one as an optimization);
// functionally it fires every parked constraint whenever any operand
// could have become bound, which is what the watched scheme guarantees —
// just without the bookkeeping, appropriate at this engine's scale.
func (cs ConstraintStore) Propagate(ts *TermStore, s *Subst) (*Subst, ConstraintStore, bool) {
	for {
		changed := false
		remaining := make([]ArithConstraint, 0, len(cs.pending))
		for _, c := range cs.pending {
			xi, xok := resolveInt(ts, s, c.X)
			yi, yok := resolveInt(ts, s, c.Y)
			zi, zok := resolveInt(ts, s, c.Z)
			known := 0
			if xok {
				known++
			}
			if yok {
				known++
			}
			if zok {
				known++
			}

			if known < 2 {
				remaining = append(remaining, c)
				continue
			}

			switch {
			case xok && yok && zok:
				if xi+yi != zi {
					return s, cs, false
				}
				// Fully concrete and consistent: nothing left to track.
			case xok && yok:
				want := ts.NewInt(xi + yi)
				news, ok := Unify(ts, s, c.Z, want)
				if !ok {
					return s, cs, false
				}
				s = news
				changed = true
			case xok && zok:
				want := ts.NewInt(zi - xi)
				news, ok := Unify(ts, s, c.Y, want)
				if !ok {
					return s, cs, false
				}
				s = news
				changed = true
			case yok && zok:
				want := ts.NewInt(zi - yi)
				news, ok := Unify(ts, s, c.X, want)
				if !ok {
					return s, cs, false
				}
				s = news
				changed = true
			}
		}
		cs = ConstraintStore{pending: remaining}
		if !changed {
			return s, cs, true
		}
	}
}
