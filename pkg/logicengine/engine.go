package logicengine

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Engine is the embedder-facing handle described in spec.md §6: it owns
// a *Program, the current strategy/step-budget configuration, and at
// most one outstanding incremental query. It plays the role the
// reference implementation's Frontend plays for its FFI layer, minus the
// parser — callers build a *Program with Builder (builder.go) instead of
// loading module source.
type Engine struct {
	Program  *Program
	Strategy Strategy
	MaxSteps int

	log *zap.SugaredLogger

	pending     *IncrementalQuery
	pendingVars []QueryVar
}

// NewEngine wraps prog in an Engine configured for BFS with a default
// step budget of 10,000, matching the reference frontend's default.
func NewEngine(prog *Program) *Engine {
	return &Engine{
		Program:  prog,
		Strategy: BFS,
		MaxSteps: 10_000,
		log:      newNopLogger(),
	}
}

// WithLogger attaches a structured logger (see SPEC_FULL.md §4.7); passing
// nil restores the no-op logger.
func (e *Engine) WithLogger(l *zap.SugaredLogger) *Engine {
	if l == nil {
		l = newNopLogger()
	}
	e.log = l
	return e
}

func (e *Engine) activeRuleIndex(stageIndex int) map[RelId][]RuleId {
	return e.Program.RuleIndex(e.Program.ActiveRuleSet(stageIndex))
}

// Query runs goal against the globally active rule set, returning at
// most limit solutions (limit <= 0 means unbounded) while consuming at
// most maxSteps scheduler steps in total.
func (e *Engine) Query(goal PropId, limit, maxSteps int) []*Subst {
	sols := Query(e.Program, e.activeRuleIndex(-1), goal, e.Strategy, limit, maxSteps)
	e.log.Debugw("query", "goal", goal, "limit", limit, "maxSteps", maxSteps, "solutions", len(sols))
	return sols
}

// QueryStart begins an incremental query for goal using e.MaxSteps,
// discarding any previously pending incremental query (spec.md §5: only
// one outstanding incremental query per engine handle).
func (e *Engine) QueryStart(goal PropId, queryVars []QueryVar) (string, bool) {
	sol, iq := QueryStart(e.Program, e.activeRuleIndex(-1), goal, e.Strategy, e.MaxSteps)
	e.pending = &iq
	e.pendingVars = queryVars
	if sol == nil {
		return "", false
	}
	return FormatSolution(e.Program, queryVars, sol), true
}

// QueryNext resumes the pending incremental query, if any.
func (e *Engine) QueryNext() (string, bool) {
	if e.pending == nil {
		return "", false
	}
	sol, iq := QueryNext(e.Program, e.activeRuleIndex(-1), *e.pending, e.MaxSteps)
	e.pending = &iq
	if sol == nil {
		return "", false
	}
	return FormatSolution(e.Program, e.pendingVars, sol), true
}

// HasMoreSolutions reports whether the pending incremental query has a
// non-empty residual queue.
func (e *Engine) HasMoreSolutions() bool {
	return e.pending != nil && e.pending.HasMore()
}

// QueryStop discards the residual queue immediately (spec.md §5, §9: the
// stop operation must drop hidden solver state eagerly).
func (e *Engine) QueryStop() {
	e.pending = nil
	e.pendingVars = nil
}

// GetStateVar returns the reified current value of the named state
// variable, or false if no such state variable exists.
func (e *Engine) GetStateVar(name string) (string, bool) {
	term, ok := e.Program.CurrentVarMap[name]
	if !ok {
		return "", false
	}
	s := e.solvedSubst()
	return Reify(e.Program, s, term), true
}

// StateVars returns (name, reified value) pairs for every declared state
// variable, in declaration order.
func (e *Engine) StateVars() []StateVarBinding {
	s := e.solvedSubst()
	bindings := make([]StateVarBinding, 0, len(e.Program.StateVars))
	for _, name := range e.Program.StateVars {
		term, ok := e.Program.CurrentVarMap[name]
		if !ok {
			continue
		}
		bindings = append(bindings, StateVarBinding{Name: name, Value: Reify(e.Program, s, term)})
	}
	return bindings
}

// StateVarBinding is one (name, reified value) pair returned by
// StateVars.
type StateVarBinding struct {
	Name  string
	Value string
}

// solvedSubst resolves Prop.True() against the engine's active rule set
// to obtain a representative substitution (one always exists: True
// succeeds unconditionally), mirroring how the reference frontend
// reifies state vars — by querying True() rather than threading a
// separate "current subst" field.
func (e *Engine) solvedSubst() *Subst {
	sols := e.Query(e.Program.Props.True(), 1, e.MaxSteps)
	if len(sols) == 0 {
		return nil
	}
	return sols[0]
}

// RunStage runs the stage at stageIndex, per spec.md §4.6. On success it
// commits the stage's next-variable bindings atomically; on failure the
// state vector is left untouched.
func (e *Engine) RunStage(stageIndex int) error {
	if stageIndex < 0 || stageIndex >= len(e.Program.Stages) {
		return fmt.Errorf("%w: index %d", ErrUnknownStage, stageIndex)
	}
	stage := e.Program.Stages[stageIndex]
	if len(stage.StateConstraints) == 0 {
		return nil
	}

	// Reify the current value of every declared state variable against a
	// representative solved substitution, then pin each state-var term
	// to that reified value with an Eq goal, so the stage's own
	// constraints are solved against the *current* state rather than an
	// unconstrained one.
	solved := e.solvedSubst()
	pinned := make([]PropId, 0, len(e.Program.StateVars)+len(stage.StateConstraints))
	for _, name := range e.Program.StateVars {
		termID, ok := e.Program.StateVarTermIds[name]
		if !ok {
			continue
		}
		cur, ok := e.Program.CurrentVarMap[name]
		if !ok {
			continue
		}
		resolved := WalkDeep(e.Program.Terms, solved, cur)
		pinned = append(pinned, e.Program.Props.Eq(termID, resolved))
	}
	pinned = append(pinned, stage.StateConstraints...)
	goal := e.Program.Props.AndAll(pinned)

	activeRules := e.activeRuleIndex(stageIndex)
	solutions := Query(e.Program, activeRules, goal, e.Strategy, 2, e.MaxSteps)

	switch len(solutions) {
	case 0:
		e.log.Debugw("stage: no solutions", "stage", stage.Name)
		return &StageError{Stage: stage.Name, Sentinel: ErrNoSolutions}
	case 1:
		e.commitStage(stage, solutions[0])
		e.log.Debugw("stage: committed", "stage", stage.Name, "nextVars", stage.NextVarMap)
		return nil
	default:
		diffs := diffNextVars(e.Program, stage, solutions[0], solutions[1])
		e.log.Debugw("stage: ambiguous", "stage", stage.Name, "diffs", diffs)
		return &StageError{Stage: stage.Name, Sentinel: ErrAmbiguous, Diffs: diffs}
	}
}

// RunStageByName resolves name to a stage index and runs it.
func (e *Engine) RunStageByName(name string) error {
	idx, ok := e.Program.StageByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStage, name)
	}
	return e.RunStage(idx)
}

// commitStage atomically updates CurrentVarMap from sol's bindings of
// each next-variable; state variables not mentioned in NextVarMap are
// left unchanged, per spec.md §4.6.
func (e *Engine) commitStage(stage Stage, sol *Subst) {
	updates := make(map[string]TermId, len(stage.NextVarMap))
	for name, nextTerm := range stage.NextVarMap {
		updates[name] = Walk(e.Program.Terms, sol, nextTerm)
	}
	for name, val := range updates {
		e.Program.CurrentVarMap[name] = val
	}
}

func diffNextVars(prog *Program, stage Stage, a, b *Subst) []string {
	names := make([]string, 0, len(stage.NextVarMap))
	for name := range stage.NextVarMap {
		names = append(names, name)
	}
	sort.Strings(names)

	var diffs []string
	for _, name := range names {
		nextTerm := stage.NextVarMap[name]
		v1 := Reify(prog, a, nextTerm)
		v2 := Reify(prog, b, nextTerm)
		if v1 != v2 {
			diffs = append(diffs, fmt.Sprintf("%s: %s vs %s", name, v1, v2))
		}
	}
	return diffs
}
