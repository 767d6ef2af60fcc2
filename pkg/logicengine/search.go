package logicengine

// Strategy selects how the SearchQueue pops pending states: FIFO for
// breadth-first search, LIFO for depth-first search (spec.md §4.5).
type Strategy int

const (
	BFS Strategy = iota
	DFS
)

// State is one partial proof attempt in flight: a residual goal, the
// substitution accumulated so far, the pending arithmetic constraints,
// and how many scheduler steps produced it.
type State struct {
	Goal        PropId
	Subst       *Subst
	Constraints ConstraintStore
	StepCount   int
}

// SearchQueue is the scheduler's frontier of partial states. BFS pops
// from the front (FIFO); DFS pops from the back (LIFO).
type SearchQueue struct {
	strategy Strategy
	items    []State
}

// NewSearchQueue creates a queue under strategy, seeded with init.
func NewSearchQueue(strategy Strategy, init State) SearchQueue {
	return SearchQueue{strategy: strategy, items: []State{init}}
}

// Empty reports whether the queue has no pending states.
func (q SearchQueue) Empty() bool {
	return len(q.items) == 0
}

// Len reports how many states are pending.
func (q SearchQueue) Len() int {
	return len(q.items)
}

// pop removes and returns the next state to expand, per strategy.
func (q *SearchQueue) pop() (State, bool) {
	if len(q.items) == 0 {
		return State{}, false
	}
	switch q.strategy {
	case DFS:
		idx := len(q.items) - 1
		s := q.items[idx]
		q.items = q.items[:idx]
		return s, true
	default: // BFS
		s := q.items[0]
		q.items = q.items[1:]
		return s, true
	}
}

// pushAll enqueues successors in declaration order. For BFS that's a
// plain append at the tail (later expansions still pop in FIFO order
// relative to each other). For DFS, pushing in declaration order and
// popping from the tail would try the LAST declared alternative first,
// so DFS pushes in reverse: the observable contract (spec.md §4.5) is
// that declaration order is the order of attempt regardless of strategy.
func (q *SearchQueue) pushAll(states []State) {
	if q.strategy == DFS {
		for i := len(states) - 1; i >= 0; i-- {
			q.items = append(q.items, states[i])
		}
		return
	}
	q.items = append(q.items, states...)
}

// expand reduces the outermost connective of st.Goal by one step,
// returning the resulting successor states in declaration order, per
// spec.md §4.5. A nil, non-empty-vs-empty distinction isn't meaningful
// here: an empty (possibly nil) slice means st's goal failed outright.
func expand(prog *Program, activeRules map[RelId][]RuleId, st State) []State {
	g := prog.Props.Get(st.Goal)
	switch g.Kind {
	case PropTrue:
		return []State{st}

	case PropAnd:
		left := prog.Props.Get(g.A)
		if left.Kind == PropTrue {
			return []State{{Goal: g.B, Subst: st.Subst, Constraints: st.Constraints, StepCount: st.StepCount + 1}}
		}
		subSt := State{Goal: g.A, Subst: st.Subst, Constraints: st.Constraints, StepCount: st.StepCount}
		subs := expand(prog, activeRules, subSt)
		out := make([]State, 0, len(subs))
		for _, sub := range subs {
			newGoal := prog.Props.And(sub.Goal, g.B)
			out = append(out, State{Goal: newGoal, Subst: sub.Subst, Constraints: sub.Constraints, StepCount: sub.StepCount + 1})
		}
		return out

	case PropEq:
		news, newcs, ok := unifyAndPropagate(prog, st.Subst, st.Constraints, g.EqA, g.EqB)
		if !ok {
			return nil
		}
		return []State{{Goal: prog.Props.True(), Subst: news, Constraints: newcs, StepCount: st.StepCount + 1}}

	case PropApp:
		return expandApp(prog, activeRules, st, g)

	case PropCall:
		rule := prog.Rules[g.RuleId]
		_, conclArgs, premise := rule.instantiate(prog.Terms, prog.Props)
		news, newcs, ok := unifyArgsAndPropagate(prog, st.Subst, st.Constraints, g.CallArgs, conclArgs)
		if !ok {
			return nil
		}
		return []State{{Goal: premise, Subst: news, Constraints: newcs, StepCount: st.StepCount + 1}}

	default:
		return nil
	}
}

func expandApp(prog *Program, activeRules map[RelId][]RuleId, st State, g Prop) []State {
	rel := prog.Rels.Get(g.Rel)
	if rel.Kind == RelBuiltin {
		switch rel.Builtin {
		case BuiltinEq:
			news, newcs, ok := unifyAndPropagate(prog, st.Subst, st.Constraints, g.Args[0], g.Args[1])
			if !ok {
				return nil
			}
			return []State{{Goal: prog.Props.True(), Subst: news, Constraints: newcs, StepCount: st.StepCount + 1}}
		case BuiltinIntAdd:
			news, newcs, ok := st.Constraints.Post(prog.Terms, st.Subst, ArithConstraint{X: g.Args[0], Y: g.Args[1], Z: g.Args[2]})
			if !ok {
				return nil
			}
			return []State{{Goal: prog.Props.True(), Subst: news, Constraints: newcs, StepCount: st.StepCount + 1}}
		default:
			return nil
		}
	}

	var out []State

	for _, factID := range prog.FactsByRel[g.Rel] {
		fact := prog.Props.Get(factID)
		news, newcs, ok := unifyArgsAndPropagate(prog, st.Subst, st.Constraints, g.Args, fact.Args)
		if ok {
			out = append(out, State{Goal: prog.Props.True(), Subst: news, Constraints: newcs, StepCount: st.StepCount + 1})
		}
	}

	for _, ruleID := range activeRules[g.Rel] {
		rule := prog.Rules[ruleID]
		_, conclArgs, premise := rule.instantiate(prog.Terms, prog.Props)
		news, newcs, ok := unifyArgsAndPropagate(prog, st.Subst, st.Constraints, g.Args, conclArgs)
		if !ok {
			continue
		}
		out = append(out, State{Goal: premise, Subst: news, Constraints: newcs, StepCount: st.StepCount + 1})
	}

	return out
}

func unifyAndPropagate(prog *Program, s *Subst, cs ConstraintStore, a, b TermId) (*Subst, ConstraintStore, bool) {
	news, ok := Unify(prog.Terms, s, a, b)
	if !ok {
		return s, cs, false
	}
	return cs.Propagate(prog.Terms, news)
}

func unifyArgsAndPropagate(prog *Program, s *Subst, cs ConstraintStore, as, bs []TermId) (*Subst, ConstraintStore, bool) {
	cur, ok := UnifyArgs(prog.Terms, s, as, bs)
	if !ok {
		return s, cs, false
	}
	return cs.Propagate(prog.Terms, cur)
}

// StepUntilSolution consumes at most maxSteps pop-and-expand steps from
// queue, returning the first solution found (or nil if the budget ran
// out or the queue emptied), the residual queue, and how many steps were
// actually consumed. This is the primitive that powers both the batch
// Query and the incremental QueryStart/QueryNext pair (spec.md §4.5,
// §6).
func StepUntilSolution(prog *Program, activeRules map[RelId][]RuleId, queue SearchQueue, maxSteps int) (*State, SearchQueue, int) {
	steps := 0
	for steps < maxSteps {
		st, ok := queue.pop()
		if !ok {
			return nil, queue, steps
		}
		steps++
		if prog.Props.Get(st.Goal).Kind == PropTrue {
			return &st, queue, steps
		}
		queue.pushAll(expand(prog, activeRules, st))
	}
	return nil, queue, steps
}
