package logicengine

import (
	"strconv"
	"strings"
)

// Reify renders the resolved value of t under s to its user-visible
// string form, per spec.md §6's reification contract:
//
//	Atom s          -> s
//	Int n           -> decimal
//	Float f         -> shortest round-trippable decimal
//	unbound Var     -> _Gn, where n is the TermId
//	App(rel, args)  -> rel(a1, ..., ak) for k>0, or rel for k==0
func Reify(prog *Program, s *Subst, t TermId) string {
	t = Walk(prog.Terms, s, t)
	term := prog.Terms.Get(t)
	switch term.Kind {
	case KindVar, KindTemplateVar:
		return "_G" + strconv.Itoa(int(t))
	case KindAtom:
		return term.Atom
	case KindInt:
		return strconv.FormatInt(int64(term.Int), 10)
	case KindFloat:
		return strconv.FormatFloat(float64(term.Float), 'g', -1, 32)
	case KindApp:
		name := prog.Rels.Get(term.Rel).Name
		if len(term.Args) == 0 {
			return name
		}
		parts := make([]string, len(term.Args))
		for i, a := range term.Args {
			parts[i] = Reify(prog, s, a)
		}
		return name + "(" + strings.Join(parts, ", ") + ")"
	default:
		return "?"
	}
}

// FormatSolution renders each of queryVars under s as name=value and
// joins the pairs with ", " into one string: "name1=value1, name2=value2".
// A single-variable query yields a single "name=value" pair.
func FormatSolution(prog *Program, queryVars []QueryVar, s *Subst) string {
	parts := make([]string, len(queryVars))
	for i, qv := range queryVars {
		parts[i] = qv.Name + "=" + Reify(prog, s, qv.Term)
	}
	return strings.Join(parts, ", ")
}

// QueryVar names a TermId the caller wants reported back in a solution,
// e.g. the free variables of an open query.
type QueryVar struct {
	Name string
	Term TermId
}
