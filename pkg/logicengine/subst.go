package logicengine

// Subst is a persistent, parent-linked list of bindings from Var TermIds
// to bound TermIds. Persistence gives branching search cheap forks: extending a
// substitution never mutates an existing one, so every live search State
// can hold its own *Subst without cloning the whole map (the alternative
// the design notes call out for DFS-only engines with checkpoint/rollback
// is unnecessary once BFS is in play, since BFS keeps many branches
// simultaneously live).
//
// A nil *Subst denotes the empty substitution.
type Subst struct {
	parent *Subst
	v      TermId
	t      TermId
}

// Lookup returns the term bound to v in s, if any.
func (s *Subst) Lookup(v TermId) (TermId, bool) {
	for f := s; f != nil; f = f.parent {
		if f.v == v {
			return f.t, true
		}
	}
	return 0, false
}

// Walk follows variable bindings in s starting from t until it reaches a
// non-variable term or an unbound variable, and returns the resolved id.
func Walk(ts *TermStore, s *Subst, t TermId) TermId {
	for {
		term := ts.Get(t)
		if term.Kind != KindVar {
			return t
		}
		bound, ok := s.Lookup(t)
		if !ok {
			return t
		}
		t = bound
	}
}

// WalkDeep recursively resolves t and, for App terms, its arguments,
// producing a fully reified copy suitable for reification or for storing
// as a ground value. Unbound variables are left as-is.
func WalkDeep(ts *TermStore, s *Subst, t TermId) TermId {
	t = Walk(ts, s, t)
	term := ts.Get(t)
	if term.Kind != KindApp || len(term.Args) == 0 {
		return t
	}
	newArgs := make([]TermId, len(term.Args))
	changed := false
	for i, a := range term.Args {
		newArgs[i] = WalkDeep(ts, s, a)
		if newArgs[i] != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return ts.NewApp(term.Rel, newArgs...)
}

// occurs reports whether v appears anywhere within t, resolving bindings
// in s along the way. It backs the occurs-check in Extend.
func occurs(ts *TermStore, s *Subst, v TermId, t TermId) bool {
	t = Walk(ts, s, t)
	if t == v {
		return true
	}
	term := ts.Get(t)
	if term.Kind != KindApp {
		return false
	}
	for _, a := range term.Args {
		if occurs(ts, s, v, a) {
			return true
		}
	}
	return false
}

// Extend binds v to t in s, returning the new substitution. It fails
// (returns ok=false) when t contains v after walking — the occurs check
// that keeps every substitution acyclic.
func Extend(ts *TermStore, s *Subst, v TermId, t TermId) (*Subst, bool) {
	if occurs(ts, s, v, t) {
		return s, false
	}
	return &Subst{parent: s, v: v, t: t}, true
}
