package logicengine

import "testing"

func TestDemoProgramBuildsAndQueries(t *testing.T) {
	prog := DemoProgram().Build()
	ancestor := prog.Rels.UserRel("ancestor")
	qx := prog.Terms.NewVar("X")
	qy := prog.Terms.NewVar("Y")
	goal := prog.Props.App(ancestor, qx, qy)

	idx := prog.RuleIndex(prog.ActiveRuleSet(-1))
	sols := Query(prog, idx, goal, BFS, 0, 10_000)
	// alice-bob, bob-carol, carol-dave, alice-carol, bob-dave, alice-dave.
	if len(sols) != 6 {
		t.Fatalf("expected 6 ancestor pairs over a 4-generation chain, got %d", len(sols))
	}
}

func TestDemoProgramTicksCounter(t *testing.T) {
	eng := NewEngine(DemoProgram().Build())
	for i, want := range []string{"1", "2", "3"} {
		if err := eng.RunStageByName("tick"); err != nil {
			t.Fatalf("tick %d: %v", i+1, err)
		}
		got, _ := eng.GetStateVar("count")
		if got != want {
			t.Fatalf("tick %d: expected count=%s, got %s", i+1, want, got)
		}
	}
}
