package logicengine

// Builder constructs a *Program through a fluent API, standing in for
// the out-of-scope external compiler/parser (spec.md §1, §6). Name
// resolution for relations happens here, statically, exactly once.
type Builder struct {
	prog *Program

	ruleName    string
	ruleVars    map[string]TermId // local-name -> KindTemplateVar TermId, current rule only
	ruleNumVars int

	stage *Stage
}

// NewBuilder creates a Builder around a fresh, empty Program.
func NewBuilder() *Builder {
	return &Builder{prog: NewProgram()}
}

// Rel resolves (interning if necessary) a user relation by name.
func (b *Builder) Rel(name string) RelId {
	return b.prog.Rels.UserRel(name)
}

// Atom allocates an atom term.
func (b *Builder) Atom(text string) TermId { return b.prog.Terms.NewAtom(text) }

// Int allocates an integer term.
func (b *Builder) Int(v int32) TermId { return b.prog.Terms.NewInt(v) }

// Float allocates a float term.
func (b *Builder) Float(v float32) TermId { return b.prog.Terms.NewFloat(v) }

// App allocates App(rel, args) as a ground or partly-ground term.
func (b *Builder) App(rel RelId, args ...TermId) TermId { return b.prog.Terms.NewApp(rel, args...) }

// Var allocates a free-standing program-level variable (used for queries
// and for state-variable declarations, never inside a rule template —
// use RuleVar for that).
func (b *Builder) Var(name string) TermId { return b.prog.Terms.NewVar(name) }

// Fact asserts a ground fact App(rel, args) and returns it.
func (b *Builder) Fact(rel RelId, args ...TermId) PropId {
	factProp := b.prog.Props.App(rel, args...)
	b.prog.AddFact(factProp)
	return factProp
}

// Eq allocates an equality goal.
func (b *Builder) Eq(a, bTerm TermId) PropId { return b.prog.Props.Eq(a, bTerm) }

// Goal allocates the application of rel to args as a goal.
func (b *Builder) Goal(rel RelId, args ...TermId) PropId { return b.prog.Props.App(rel, args...) }

// IntAdd allocates the built-in x + y = z arithmetic goal.
func (b *Builder) IntAdd(x, y, z TermId) PropId {
	return b.prog.Props.App(b.prog.Rels.IntAddRel(), x, y, z)
}

// And conjoins goals left to right.
func (b *Builder) And(props ...PropId) PropId { return b.prog.Props.AndAll(props) }

// BeginRule starts building a rule named name. Call RuleVar for each
// rule-local variable the premise/conclusion will reference, build the
// premise goal, then pass it and the conclusion to EndRule.
func (b *Builder) BeginRule(name string) {
	b.ruleName = name
	b.ruleVars = make(map[string]TermId)
	b.ruleNumVars = 0
}

// RuleVar introduces (or re-references, if already declared this rule) a
// rule-local template variable named localName.
func (b *Builder) RuleVar(localName string) TermId {
	if id, ok := b.ruleVars[localName]; ok {
		return id
	}
	slot := b.ruleNumVars
	b.ruleNumVars++
	id := b.prog.Terms.NewTemplateVar(slot, localName)
	b.ruleVars[localName] = id
	return id
}

// EndRule finalizes the in-progress rule with premise and conclusion
// App(rel, args), registers it, and returns its RuleId. It does not make
// the rule active anywhere — call AddGlobalRule or StageRule (once a
// stage is in progress) for that.
func (b *Builder) EndRule(premise PropId, rel RelId, args ...TermId) RuleId {
	r := Rule{
		Name:      b.ruleName,
		NumVars:   b.ruleNumVars,
		Premise:   premise,
		ConclRel:  rel,
		ConclArgs: append([]TermId(nil), args...),
	}
	id := b.prog.AddRule(r)
	b.ruleName, b.ruleVars, b.ruleNumVars = "", nil, 0
	return id
}

// AddGlobalRule makes rule active in every stage (and in top-level
// queries run outside a stage).
func (b *Builder) AddGlobalRule(rule RuleId) {
	b.prog.GlobalRules = append(b.prog.GlobalRules, rule)
}

// DeclareStateVar declares a named state variable, allocating the
// program-level variable that holds its value and seeding its initial
// binding in CurrentVarMap.
func (b *Builder) DeclareStateVar(name string, initial TermId) {
	termID := b.prog.Terms.NewVar(name)
	b.prog.StateVars = append(b.prog.StateVars, name)
	b.prog.StateVarTermIds[name] = termID
	b.prog.CurrentVarMap[name] = initial
}

// StateVarTerm returns the distinguished TermId for a declared state
// variable, for use inside a stage's state constraints.
func (b *Builder) StateVarTerm(name string) TermId {
	return b.prog.StateVarTermIds[name]
}

// BeginStage starts building a stage named name.
func (b *Builder) BeginStage(name string) {
	b.stage = &Stage{Name: name, NextVarMap: make(map[string]TermId)}
}

// StageRule activates rule within the in-progress stage.
func (b *Builder) StageRule(rule RuleId) {
	b.stage.Rules = append(b.stage.Rules, rule)
}

// StateConstraint adds goal to the in-progress stage's state constraints,
// in declaration order.
func (b *Builder) StateConstraint(goal PropId) {
	b.stage.StateConstraints = append(b.stage.StateConstraints, goal)
}

// NextVar binds the "next" image of a declared state variable to term,
// within the in-progress stage.
func (b *Builder) NextVar(name string, term TermId) {
	b.stage.NextVarMap[name] = term
}

// EndStage finalizes the in-progress stage and appends it to the
// program.
func (b *Builder) EndStage() {
	b.prog.Stages = append(b.prog.Stages, *b.stage)
	b.stage = nil
}

// Build returns the constructed Program.
func (b *Builder) Build() *Program {
	return b.prog
}
