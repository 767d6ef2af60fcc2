// Package main implements the logicengine CLI, a thin cobra front end
// around pkg/logicengine for running the bundled demo program, issuing
// ad hoc queries against it, and advancing its stages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gitrdm/logicengine/pkg/logicengine"
)

var (
	verbose  bool
	strategy string
	maxSteps int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "logicengine",
	Short: "logicengine - a staged relational logic engine",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the bundled ancestry/counter demo program to a fixed point",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newDemoEngine()

		prog := eng.Program
		ancestor := prog.Rels.UserRel("ancestor")
		qx := prog.Terms.NewVar("X")
		qy := prog.Terms.NewVar("Y")
		goal := prog.Props.App(ancestor, qx, qy)

		sols := eng.Query(goal, 0, eng.MaxSteps)
		fmt.Printf("ancestor/2 solutions (%d):\n", len(sols))
		for _, s := range sols {
			fmt.Printf("  %s\n", logicengine.FormatSolution(prog, []logicengine.QueryVar{
				{Name: "X", Term: qx},
				{Name: "Y", Term: qy},
			}, s))
		}

		for i := 0; i < 3; i++ {
			if err := eng.RunStageByName("tick"); err != nil {
				return err
			}
			v, _ := eng.GetStateVar("count")
			fmt.Printf("after tick %d: count=%s\n", i+1, v)
		}
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <relation> <arg>...",
	Short: "Query a relation of the bundled demo program; use _ for a fresh variable",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newDemoEngine()
		if err := applyStrategy(eng, strategy); err != nil {
			return err
		}
		prog := eng.Program

		rel, ok := prog.Rels.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown relation %q", args[0])
		}

		var queryVars []logicengine.QueryVar
		termArgs := make([]logicengine.TermId, 0, len(args)-1)
		for i, a := range args[1:] {
			if a == "_" {
				name := fmt.Sprintf("_%d", i)
				v := prog.Terms.NewVar(name)
				queryVars = append(queryVars, logicengine.QueryVar{Name: name, Term: v})
				termArgs = append(termArgs, v)
				continue
			}
			termArgs = append(termArgs, prog.Terms.NewAtom(a))
		}

		goal := prog.Props.App(rel, termArgs...)
		sols := eng.Query(goal, 0, maxSteps)
		if len(queryVars) == 0 {
			fmt.Printf("%d solution(s)\n", len(sols))
			return nil
		}
		for _, s := range sols {
			fmt.Println(logicengine.FormatSolution(prog, queryVars, s))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the logicengine version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("logicengine v0.1.0")
	},
}

func newDemoEngine() *logicengine.Engine {
	prog := logicengine.DemoProgram().Build()
	eng := logicengine.NewEngine(prog)
	if logger != nil {
		eng.WithLogger(logger.Sugar())
	}
	eng.MaxSteps = maxSteps
	return eng
}

func applyStrategy(eng *logicengine.Engine, s string) error {
	switch s {
	case "bfs", "":
		eng.Strategy = logicengine.BFS
	case "dfs":
		eng.Strategy = logicengine.DFS
	default:
		return fmt.Errorf("unknown strategy %q (want bfs or dfs)", s)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&strategy, "strategy", "bfs", "Search strategy: bfs or dfs")
	rootCmd.PersistentFlags().IntVar(&maxSteps, "max-steps", 10_000, "Scheduler step budget per query")

	rootCmd.AddCommand(demoCmd, queryCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
