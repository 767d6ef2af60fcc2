package logicengine

// Query runs goal to completion against the given active rule set,
// returning at most limit solutions while consuming at most maxSteps
// scheduler steps in total (spec.md §6). A limit <= 0 means unbounded.
//
// Query budgets max_steps once across the whole call — the search
// resumes against the same shrinking budget after each solution — unlike
// the incremental QueryStart/QueryNext pair below, where each call gets
// its own fresh budget (matching the reference frontend's
// query_with_limit_and_steps vs. query_start/query_next split).
func Query(prog *Program, activeRules map[RelId][]RuleId, goal PropId, strategy Strategy, limit int, maxSteps int) []*Subst {
	queue := NewSearchQueue(strategy, State{Goal: goal})
	var solutions []*Subst
	remaining := maxSteps

	for limit <= 0 || len(solutions) < limit {
		if remaining <= 0 {
			break
		}
		sol, nextQueue, used := StepUntilSolution(prog, activeRules, queue, remaining)
		queue = nextQueue
		remaining -= used
		if sol == nil {
			break
		}
		solutions = append(solutions, sol.Subst)
	}
	return solutions
}

// IncrementalQuery holds the residual SearchQueue handed back and forth
// between QueryStart and QueryNext, the only state that needs to survive
// between incremental calls (spec.md §9).
type IncrementalQuery struct {
	queue SearchQueue
	live  bool
}

// QueryStart begins an incremental query for goal, consuming up to
// maxSteps steps and returning the first solution (or nil) plus the
// handle used to resume.
func QueryStart(prog *Program, activeRules map[RelId][]RuleId, goal PropId, strategy Strategy, maxSteps int) (*Subst, IncrementalQuery) {
	queue := NewSearchQueue(strategy, State{Goal: goal})
	sol, residual, _ := StepUntilSolution(prog, activeRules, queue, maxSteps)
	iq := IncrementalQuery{queue: residual, live: !residual.Empty()}
	if sol == nil {
		return nil, iq
	}
	return sol.Subst, iq
}

// QueryNext resumes iq, consuming up to maxSteps further steps and
// returning the next solution (or nil) plus the updated handle.
func QueryNext(prog *Program, activeRules map[RelId][]RuleId, iq IncrementalQuery, maxSteps int) (*Subst, IncrementalQuery) {
	if !iq.live || iq.queue.Empty() {
		return nil, IncrementalQuery{}
	}
	sol, residual, _ := StepUntilSolution(prog, activeRules, iq.queue, maxSteps)
	next := IncrementalQuery{queue: residual, live: !residual.Empty()}
	if sol == nil {
		return nil, next
	}
	return sol.Subst, next
}

// HasMore reports whether iq has a non-empty residual queue.
func (iq IncrementalQuery) HasMore() bool {
	return iq.live && !iq.queue.Empty()
}
