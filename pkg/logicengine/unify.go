package logicengine

// Unify walks both sides of a and b under s and then dispatches on the
// resolved pair, per spec.md §4.1:
//
//   - two unbound Vars with the same id: succeed unchanged.
//   - one unbound Var: extend with the other side (occurs-checked).
//   - two Atoms / two Ints / two Floats: succeed iff equal by value.
//   - two Apps: succeed iff same Rel and same arity; unify arguments
//     pairwise, left to right, threading the substitution.
//   - otherwise: fail.
//
// Int and Float never unify with each other nor with Atom.
func Unify(ts *TermStore, s *Subst, a, b TermId) (*Subst, bool) {
	a = Walk(ts, s, a)
	b = Walk(ts, s, b)
	ta := ts.Get(a)
	tb := ts.Get(b)

	switch {
	case ta.Kind == KindVar && tb.Kind == KindVar:
		if a == b {
			return s, true
		}
		return Extend(ts, s, a, b)
	case ta.Kind == KindVar:
		return Extend(ts, s, a, b)
	case tb.Kind == KindVar:
		return Extend(ts, s, b, a)
	case ta.Kind == KindAtom && tb.Kind == KindAtom:
		return s, ta.Atom == tb.Atom
	case ta.Kind == KindInt && tb.Kind == KindInt:
		return s, ta.Int == tb.Int
	case ta.Kind == KindFloat && tb.Kind == KindFloat:
		return s, floatBits(ta.Float) == floatBits(tb.Float)
	case ta.Kind == KindApp && tb.Kind == KindApp:
		if ta.Rel != tb.Rel || len(ta.Args) != len(tb.Args) {
			return s, false
		}
		cur := s
		for i := range ta.Args {
			var ok bool
			cur, ok = Unify(ts, cur, ta.Args[i], tb.Args[i])
			if !ok {
				return s, false
			}
		}
		return cur, true
	default:
		return s, false
	}
}

// UnifyArgs unifies two equal-length slices of terms pairwise,
// left-to-right, threading the substitution. It is the building block
// rule-head and fact matching use (spec.md §4.4).
func UnifyArgs(ts *TermStore, s *Subst, as, bs []TermId) (*Subst, bool) {
	if len(as) != len(bs) {
		return s, false
	}
	cur := s
	for i := range as {
		var ok bool
		cur, ok = Unify(ts, cur, as[i], bs[i])
		if !ok {
			return s, false
		}
	}
	return cur, true
}
