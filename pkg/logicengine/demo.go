package logicengine

// DemoProgram builds a small ancestry-plus-counter program exercising
// facts, a recursive rule, arithmetic, and a single advancing stage, for
// use by the CLI's demo subcommand and by package tests. It plays the
// role the reference implementation's bundled .gg3z module examples
// play, since the text-grammar front end is out of scope here.
func DemoProgram() *Builder {
	b := NewBuilder()

	parent := b.Rel("parent")
	ancestor := b.Rel("ancestor")

	alice := b.Atom("alice")
	bob := b.Atom("bob")
	carol := b.Atom("carol")
	dave := b.Atom("dave")

	b.Fact(parent, alice, bob)
	b.Fact(parent, bob, carol)
	b.Fact(parent, carol, dave)

	// ancestor(X, Y) :- parent(X, Y).
	b.BeginRule("ancestor-base")
	x := b.RuleVar("X")
	y := b.RuleVar("Y")
	premise := b.Goal(parent, x, y)
	baseRule := b.EndRule(premise, ancestor, x, y)
	b.AddGlobalRule(baseRule)

	// ancestor(X, Z) :- parent(X, Y), ancestor(Y, Z).
	b.BeginRule("ancestor-step")
	x2 := b.RuleVar("X")
	y2 := b.RuleVar("Y")
	z2 := b.RuleVar("Z")
	step := b.And(b.Goal(parent, x2, y2), b.Goal(ancestor, y2, z2))
	stepRule := b.EndRule(step, ancestor, x2, z2)
	b.AddGlobalRule(stepRule)

	// A single state variable "count" advanced by one stage:
	// next = count + 1.
	b.DeclareStateVar("count", b.Int(0))
	b.BeginStage("tick")
	countNow := b.StateVarTerm("count")
	countNext := b.Var("count_next")
	b.StateConstraint(b.IntAdd(countNow, b.Int(1), countNext))
	b.NextVar("count", countNext)
	b.EndStage()

	return b
}
