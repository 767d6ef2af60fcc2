package logicengine

import "testing"

// newFactsProgram returns a Program with a handful of color/shape facts,
// grounding the "open fact query" scenario (spec.md §8 scenario 1).
func newFactsProgram() (*Program, RelId) {
	b := NewBuilder()
	color := b.Rel("color")
	b.Fact(color, b.Atom("apple"), b.Atom("red"))
	b.Fact(color, b.Atom("banana"), b.Atom("yellow"))
	b.Fact(color, b.Atom("grape"), b.Atom("purple"))
	return b.Build(), color
}

func TestOpenFactQueryReturnsAllMatches(t *testing.T) {
	prog, color := newFactsProgram()
	q := prog.Terms.NewVar("Q")
	goal := prog.Props.App(color, prog.Terms.NewAtom("apple"), q)

	idx := prog.RuleIndex(prog.ActiveRuleSet(-1))
	sols := Query(prog, idx, goal, BFS, 0, 1000)
	if len(sols) != 1 {
		t.Fatalf("expected exactly one color for apple, got %d", len(sols))
	}
	if got := Reify(prog, sols[0], q); got != "red" {
		t.Fatalf("expected apple to be red, got %s", got)
	}
}

func TestOpenFactQueryFreeFirstArg(t *testing.T) {
	prog, color := newFactsProgram()
	qx := prog.Terms.NewVar("X")
	qy := prog.Terms.NewVar("Y")
	goal := prog.Props.App(color, qx, qy)

	idx := prog.RuleIndex(prog.ActiveRuleSet(-1))
	sols := Query(prog, idx, goal, BFS, 0, 1000)
	if len(sols) != 3 {
		t.Fatalf("expected 3 solutions (one per fact), got %d", len(sols))
	}
	// Facts-first, insertion-order contract (spec.md §4.5): apple, banana, grape.
	want := []string{"apple", "banana", "grape"}
	for i, sol := range sols {
		if got := Reify(prog, sol, qx); got != want[i] {
			t.Fatalf("solution %d: expected %s, got %s", i, want[i], got)
		}
	}
}

func TestEqConstrainsVariable(t *testing.T) {
	prog := NewProgram()
	x := prog.Terms.NewVar("X")
	goal := prog.Props.Eq(x, prog.Terms.NewAtom("hello"))

	sols := Query(prog, nil, goal, BFS, 0, 100)
	if len(sols) != 1 {
		t.Fatalf("expected exactly one solution, got %d", len(sols))
	}
	if got := Reify(prog, sols[0], x); got != "hello" {
		t.Fatalf("expected X=hello, got %s", got)
	}
}

func TestEqCompatibleBindingsSucceed(t *testing.T) {
	prog := NewProgram()
	x := prog.Terms.NewVar("X")
	a := prog.Props.Eq(x, prog.Terms.NewAtom("a"))
	b := prog.Props.Eq(x, prog.Terms.NewAtom("a"))
	goal := prog.Props.And(a, b)

	sols := Query(prog, nil, goal, BFS, 0, 100)
	if len(sols) != 1 {
		t.Fatalf("expected compatible bindings to succeed once, got %d", len(sols))
	}
}

func TestEqIncompatibleBindingsFail(t *testing.T) {
	prog := NewProgram()
	x := prog.Terms.NewVar("X")
	a := prog.Props.Eq(x, prog.Terms.NewAtom("a"))
	b := prog.Props.Eq(x, prog.Terms.NewAtom("b"))
	goal := prog.Props.And(a, b)

	sols := Query(prog, nil, goal, BFS, 0, 100)
	if len(sols) != 0 {
		t.Fatalf("expected incompatible bindings to fail, got %d solutions", len(sols))
	}
}

func TestStructuralEqUnifiesNestedTerms(t *testing.T) {
	prog := NewProgram()
	pair := prog.Rels.UserRel("pair")
	x := prog.Terms.NewVar("X")
	y := prog.Terms.NewVar("Y")
	lhs := prog.Terms.NewApp(pair, x, prog.Terms.NewAtom("b"))
	rhs := prog.Terms.NewApp(pair, prog.Terms.NewAtom("a"), y)
	goal := prog.Props.Eq(lhs, rhs)

	sols := Query(prog, nil, goal, BFS, 0, 100)
	if len(sols) != 1 {
		t.Fatalf("expected structural eq to succeed once, got %d", len(sols))
	}
	if got := Reify(prog, sols[0], x); got != "a" {
		t.Fatalf("expected X=a, got %s", got)
	}
	if got := Reify(prog, sols[0], y); got != "b" {
		t.Fatalf("expected Y=b, got %s", got)
	}
}

// newAncestryProgram grounds the recursive-rule-fixpoint scenario (spec.md
// §8 scenario 5): parent facts plus a base and a recursive ancestor rule.
func newAncestryProgram() (*Program, RelId, RelId) {
	b := NewBuilder()
	parent := b.Rel("parent")
	ancestor := b.Rel("ancestor")

	alice := b.Atom("alice")
	bob := b.Atom("bob")
	carol := b.Atom("carol")

	b.Fact(parent, alice, bob)
	b.Fact(parent, bob, carol)

	b.BeginRule("ancestor-base")
	x := b.RuleVar("X")
	y := b.RuleVar("Y")
	baseRule := b.EndRule(b.Goal(parent, x, y), ancestor, x, y)
	b.AddGlobalRule(baseRule)

	b.BeginRule("ancestor-step")
	x2 := b.RuleVar("X")
	y2 := b.RuleVar("Y")
	z2 := b.RuleVar("Z")
	step := b.And(b.Goal(parent, x2, y2), b.Goal(ancestor, y2, z2))
	stepRule := b.EndRule(step, ancestor, x2, z2)
	b.AddGlobalRule(stepRule)

	return b.Build(), parent, ancestor
}

func TestRuleFixpointDerivesTransitiveAncestors(t *testing.T) {
	prog, _, ancestor := newAncestryProgram()
	qx := prog.Terms.NewVar("X")
	qy := prog.Terms.NewVar("Y")
	goal := prog.Props.App(ancestor, qx, qy)

	idx := prog.RuleIndex(prog.ActiveRuleSet(-1))
	sols := Query(prog, idx, goal, BFS, 0, 10_000)
	if len(sols) != 3 {
		t.Fatalf("expected 3 ancestor pairs (alice-bob, bob-carol, alice-carol), got %d", len(sols))
	}

	found := make(map[string]bool)
	for _, sol := range sols {
		found[Reify(prog, sol, qx)+"->"+Reify(prog, sol, qy)] = true
	}
	for _, want := range []string{"alice->bob", "bob->carol", "alice->carol"} {
		if !found[want] {
			t.Fatalf("expected %s among ancestor solutions, got %v", want, found)
		}
	}
}

func TestIncrementalQueryEquivalentToBatch(t *testing.T) {
	prog, _, ancestor := newAncestryProgram()
	qx := prog.Terms.NewVar("X")
	qy := prog.Terms.NewVar("Y")
	goal := prog.Props.App(ancestor, qx, qy)
	idx := prog.RuleIndex(prog.ActiveRuleSet(-1))

	batch := Query(prog, idx, goal, BFS, 0, 10_000)

	var incremental []*Subst
	sol, iq := QueryStart(prog, idx, goal, BFS, 10_000)
	for sol != nil {
		incremental = append(incremental, sol)
		sol, iq = QueryNext(prog, idx, iq, 10_000)
	}

	if len(batch) != len(incremental) {
		t.Fatalf("expected incremental querying to find the same solution count: batch=%d incremental=%d", len(batch), len(incremental))
	}
	for i := range batch {
		if Reify(prog, batch[i], qx) != Reify(prog, incremental[i], qx) ||
			Reify(prog, batch[i], qy) != Reify(prog, incremental[i], qy) {
			t.Fatalf("solution %d differs between batch and incremental querying", i)
		}
	}
}

func TestStepBudgetResumptionEquivalentToOneShot(t *testing.T) {
	prog, _, ancestor := newAncestryProgram()
	qx := prog.Terms.NewVar("X")
	qy := prog.Terms.NewVar("Y")
	goal := prog.Props.App(ancestor, qx, qy)
	idx := prog.RuleIndex(prog.ActiveRuleSet(-1))

	oneShot := Query(prog, idx, goal, BFS, 0, 10_000)

	// Resume with a tiny step budget per call; the solutions discovered
	// across many small resumptions must match the single large-budget
	// run, in order (spec.md §6's incremental-resumption contract).
	var resumed []*Subst
	sol, iq := QueryStart(prog, idx, goal, BFS, 1)
	for {
		if sol != nil {
			resumed = append(resumed, sol)
		}
		if !iq.HasMore() {
			break
		}
		sol, iq = QueryNext(prog, idx, iq, 1)
	}

	if len(oneShot) != len(resumed) {
		t.Fatalf("expected step-budget resumption to find the same solutions: one-shot=%d resumed=%d", len(oneShot), len(resumed))
	}
	for i := range oneShot {
		if Reify(prog, oneShot[i], qx) != Reify(prog, resumed[i], qx) ||
			Reify(prog, oneShot[i], qy) != Reify(prog, resumed[i], qy) {
			t.Fatalf("solution %d differs between one-shot and step-budget resumption", i)
		}
	}
}

func TestGlobalRulesAloneOutsideAnyStage(t *testing.T) {
	b := NewBuilder()
	rel := b.Rel("flag")
	atom := b.Atom("set")

	b.BeginRule("flag-rule")
	trivial := b.Eq(atom, atom)
	rule := b.EndRule(trivial, rel, atom)
	// rule is only added to a stage, never GlobalRules, below.

	b.BeginStage("only-stage")
	b.StageRule(rule)
	b.EndStage()

	prog := b.Build()

	// Outside any stage, the stage-scoped rule must not be active.
	goal := prog.Props.App(rel, atom)
	outside := Query(prog, prog.RuleIndex(prog.ActiveRuleSet(-1)), goal, BFS, 1, 1000)
	if len(outside) != 0 {
		t.Fatalf("expected stage-only rule to be inactive outside its stage, got %d solutions", len(outside))
	}

	// Inside its stage, global ∪ stage rules apply.
	inside := Query(prog, prog.RuleIndex(prog.ActiveRuleSet(0)), goal, BFS, 1, 1000)
	if len(inside) != 1 {
		t.Fatalf("expected stage-scoped rule to be active within its own stage, got %d solutions", len(inside))
	}
}
