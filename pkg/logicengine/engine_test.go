package logicengine

import (
	"errors"
	"testing"
)

// newCounterProgram declares a single state variable "count", initially 0,
// advanced by a "tick" stage via the int_add builtin: next = count + 1.
// Grounds spec.md §8 scenario 6 (stage decrement/advance, run three times).
func newCounterProgram() *Builder {
	b := NewBuilder()
	b.DeclareStateVar("count", b.Int(0))

	b.BeginStage("tick")
	now := b.StateVarTerm("count")
	next := b.Var("count_next")
	b.StateConstraint(b.IntAdd(now, b.Int(1), next))
	b.NextVar("count", next)
	b.EndStage()

	return b
}

func TestStageAdvancesStateVariable(t *testing.T) {
	eng := NewEngine(newCounterProgram().Build())

	for i, want := range []string{"1", "2", "3"} {
		if err := eng.RunStageByName("tick"); err != nil {
			t.Fatalf("tick %d: unexpected error: %v", i+1, err)
		}
		got, ok := eng.GetStateVar("count")
		if !ok {
			t.Fatalf("tick %d: expected count to be declared", i+1)
		}
		if got != want {
			t.Fatalf("tick %d: expected count=%s, got %s", i+1, want, got)
		}
	}
}

func TestStageLeavesOtherStateVarsUntouched(t *testing.T) {
	b := newCounterProgram()
	b.DeclareStateVar("label", b.Atom("steady"))
	eng := NewEngine(b.Build())

	if err := eng.RunStageByName("tick"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := eng.GetStateVar("label")
	if !ok || got != "steady" {
		t.Fatalf("expected label to remain 'steady' (not mentioned in NextVarMap), got %q, ok=%v", got, ok)
	}
}

func TestStageNoSolutionLeavesStateUnchanged(t *testing.T) {
	b := NewBuilder()
	b.DeclareStateVar("count", b.Int(5))

	b.BeginStage("impossible")
	now := b.StateVarTerm("count")
	// 5 + 1 = 100 has no solution.
	b.StateConstraint(b.IntAdd(now, b.Int(1), b.Int(100)))
	b.NextVar("count", b.Var("count_next"))
	b.EndStage()

	eng := NewEngine(b.Build())
	err := eng.RunStageByName("impossible")
	if err == nil {
		t.Fatalf("expected the impossible stage to fail")
	}
	if !errors.Is(err, ErrNoSolutions) {
		t.Fatalf("expected ErrNoSolutions, got %v", err)
	}

	got, _ := eng.GetStateVar("count")
	if got != "5" {
		t.Fatalf("expected count to remain 5 after a failed stage, got %s", got)
	}
}

func TestStageAmbiguityLeavesStateUnchangedAndReportsDiffs(t *testing.T) {
	b := NewBuilder()
	b.DeclareStateVar("count", b.Int(0))

	// An underconstrained stage: next can be 1 or 2, both consistent with
	// the (absent) constraint on "choice", so two solutions exist.
	choice := b.Rel("choice")
	b.Fact(choice, b.Int(1))
	b.Fact(choice, b.Int(2))

	b.BeginStage("ambiguous")
	c := b.Var("C")
	b.StateConstraint(b.Goal(choice, c))
	b.NextVar("count", c)
	b.EndStage()

	eng := NewEngine(b.Build())
	err := eng.RunStageByName("ambiguous")
	if err == nil {
		t.Fatalf("expected the ambiguous stage to fail")
	}
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected a *StageError, got %T", err)
	}
	if len(stageErr.Diffs) != 1 || stageErr.Diffs[0] != "count: 1 vs 2" {
		t.Fatalf("expected diff 'count: 1 vs 2', got %v", stageErr.Diffs)
	}

	got, _ := eng.GetStateVar("count")
	if got != "0" {
		t.Fatalf("expected count to remain 0 after an ambiguous stage, got %s", got)
	}
}

func TestRunStageUnknownNameReturnsErrUnknownStage(t *testing.T) {
	eng := NewEngine(NewProgram())
	err := eng.RunStageByName("nope")
	if !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("expected ErrUnknownStage, got %v", err)
	}
}

func TestRunStageUnknownIndexReturnsErrUnknownStage(t *testing.T) {
	eng := NewEngine(NewProgram())
	err := eng.RunStage(3)
	if !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("expected ErrUnknownStage, got %v", err)
	}
}

func TestQueryStartNextStopLifecycle(t *testing.T) {
	prog, _, ancestor := newAncestryProgram()
	eng := NewEngine(prog)

	qx := prog.Terms.NewVar("X")
	qy := prog.Terms.NewVar("Y")
	goal := prog.Props.App(ancestor, qx, qy)
	queryVars := []QueryVar{{Name: "X", Term: qx}, {Name: "Y", Term: qy}}

	first, ok := eng.QueryStart(goal, queryVars)
	if !ok {
		t.Fatalf("expected at least one ancestor solution")
	}
	if first == "" {
		t.Fatalf("expected a non-empty formatted solution")
	}

	count := 1
	for eng.HasMoreSolutions() {
		sol, ok := eng.QueryNext()
		if !ok {
			break
		}
		if sol == "" {
			t.Fatalf("expected a non-empty formatted solution on resumption")
		}
		count++
	}
	if count != 3 {
		t.Fatalf("expected 3 total ancestor solutions across the incremental lifecycle, got %d", count)
	}

	eng.QueryStop()
	if eng.HasMoreSolutions() {
		t.Fatalf("expected QueryStop to discard the residual queue")
	}
}
