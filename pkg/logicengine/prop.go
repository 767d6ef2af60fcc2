package logicengine

// PropId is an arena index into a PropStore. Ids are stable for the
// lifetime of the store.
type PropId int

// PropKind distinguishes the variants of Prop described in spec.md §4.2.
type PropKind int

const (
	PropTrue PropKind = iota
	PropAnd
	PropEq
	PropApp
	// PropCall is the internal form used when a rule fires directly,
	// without going through PropApp's fact/rule search. The scheduler
	// instantiates the rule with fresh variables, unifies CallArgs with
	// the renamed conclusion arguments, and runs the renamed premise —
	// the same as one rule alternative of a PropApp expansion, minus the
	// relation lookup.
	PropCall
)

// Prop is a goal: a propositional expression whose solutions are
// substitutions that satisfy it.
type Prop struct {
	Kind PropKind

	// And
	A, B PropId

	// Eq
	EqA, EqB TermId

	// App
	Rel  RelId
	Args []TermId

	// Call
	RuleId   RuleId
	CallArgs []TermId
}

// PropStore is the arena backing every Prop allocated while compiling or
// solving a Program.
type PropStore struct {
	props   []Prop
	trueID  PropId
	hasTrue bool
}

// NewPropStore creates an empty prop arena.
func NewPropStore() *PropStore {
	return &PropStore{}
}

// Alloc allocates and returns the id of a new prop.
func (ps *PropStore) Alloc(p Prop) PropId {
	ps.props = append(ps.props, p)
	return PropId(len(ps.props) - 1)
}

// Get returns the prop stored at id.
func (ps *PropStore) Get(id PropId) Prop {
	return ps.props[id]
}

// True returns the id of a canonical True prop, allocating it on first
// use so repeated success states share one node.
func (ps *PropStore) True() PropId {
	if !ps.hasTrue {
		ps.trueID = ps.Alloc(Prop{Kind: PropTrue})
		ps.hasTrue = true
	}
	return ps.trueID
}

// And allocates a conjunction of p and q.
func (ps *PropStore) And(p, q PropId) PropId {
	return ps.Alloc(Prop{Kind: PropAnd, A: p, B: q})
}

// AndAll conjoins props left to right in declaration order, returning
// True for an empty slice and the sole element unwrapped for a
// single-element slice (spec.md §4.6's stage-goal construction relies on
// this shape).
func (ps *PropStore) AndAll(props []PropId) PropId {
	if len(props) == 0 {
		return ps.True()
	}
	result := props[0]
	for _, p := range props[1:] {
		result = ps.And(result, p)
	}
	return result
}

// Eq allocates an equality goal between a and b.
func (ps *PropStore) Eq(a, b TermId) PropId {
	return ps.Alloc(Prop{Kind: PropEq, EqA: a, EqB: b})
}

// App allocates the application of a relation to args as a goal.
func (ps *PropStore) App(rel RelId, args ...TermId) PropId {
	a := make([]TermId, len(args))
	copy(a, args)
	return ps.Alloc(Prop{Kind: PropApp, Rel: rel, Args: a})
}

// Call allocates the internal rule-invocation form described above.
func (ps *PropStore) Call(rule RuleId, args ...TermId) PropId {
	a := make([]TermId, len(args))
	copy(a, args)
	return ps.Alloc(Prop{Kind: PropCall, RuleId: rule, CallArgs: a})
}
