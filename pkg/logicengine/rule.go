package logicengine

// RuleId indexes into a Program's rule table.
type RuleId int

// Rule is a named premise-conclusion pair, per spec.md §3. Its premise
// and conclusion are templates: they reference KindTemplateVar slots
// 0..NumVars-1 rather than real variables, so the same Rule can be
// instantiated many times with fresh variables, one contiguous block per
// instantiation (spec.md §9's "bump allocator" guidance).
type Rule struct {
	Name      string
	NumVars   int
	Premise   PropId
	ConclRel  RelId
	ConclArgs []TermId
}

// instantiate allocates a fresh block of NumVars variables and returns
// them, the renamed conclusion arguments, and the renamed premise goal.
// Renaming walks the template Term/Prop trees, replacing each
// KindTemplateVar(slot) with freshVars[slot]. Applications containing a
// template variable are rebuilt with renamed children; atoms, literals
// and applications without template variables keep their original ids.
// Every Prop node of the premise is allocated anew.
func (r Rule) instantiate(ts *TermStore, ps *PropStore) (freshVars []TermId, conclArgs []TermId, premise PropId) {
	freshVars = make([]TermId, r.NumVars)
	for i := range freshVars {
		freshVars[i] = ts.NewVar(r.Name)
	}
	conclArgs = make([]TermId, len(r.ConclArgs))
	for i, a := range r.ConclArgs {
		conclArgs[i] = renameTerm(ts, a, freshVars)
	}
	premise = renameProp(ts, ps, r.Premise, freshVars)
	return freshVars, conclArgs, premise
}

func renameTerm(ts *TermStore, t TermId, freshVars []TermId) TermId {
	term := ts.Get(t)
	switch term.Kind {
	case KindTemplateVar:
		return freshVars[term.Slot]
	case KindApp:
		if len(term.Args) == 0 {
			return t
		}
		newArgs := make([]TermId, len(term.Args))
		changed := false
		for i, a := range term.Args {
			newArgs[i] = renameTerm(ts, a, freshVars)
			if newArgs[i] != a {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return ts.NewApp(term.Rel, newArgs...)
	default:
		return t
	}
}

func renameProp(ts *TermStore, ps *PropStore, p PropId, freshVars []TermId) PropId {
	prop := ps.Get(p)
	switch prop.Kind {
	case PropTrue:
		return p
	case PropAnd:
		return ps.And(renameProp(ts, ps, prop.A, freshVars), renameProp(ts, ps, prop.B, freshVars))
	case PropEq:
		return ps.Eq(renameTerm(ts, prop.EqA, freshVars), renameTerm(ts, prop.EqB, freshVars))
	case PropApp:
		args := make([]TermId, len(prop.Args))
		for i, a := range prop.Args {
			args[i] = renameTerm(ts, a, freshVars)
		}
		return ps.App(prop.Rel, args...)
	case PropCall:
		args := make([]TermId, len(prop.CallArgs))
		for i, a := range prop.CallArgs {
			args[i] = renameTerm(ts, a, freshVars)
		}
		return ps.Call(prop.RuleId, args...)
	default:
		return p
	}
}
