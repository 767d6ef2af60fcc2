package logicengine

// Stage is a named collection of rules plus state constraints that
// deterministically advances the state vector, per spec.md §3.
type Stage struct {
	Name             string
	Rules            []RuleId
	StateConstraints []PropId
	// NextVarMap binds the distinguished "next" image of each state
	// variable to a TermId that appears within StateConstraints.
	NextVarMap map[string]TermId
}

// Program is the normalized intermediate form an external compiler hands
// the core (spec.md §6): arenas for Terms and Props, tables of Rels,
// Rules and Stages, the ground facts, and the state-variable bookkeeping
// a Stage's constraints advance.
type Program struct {
	Terms *TermStore
	Props *PropStore
	Rels  *RelTable

	Rules       []Rule
	GlobalRules []RuleId
	Stages      []Stage

	// Facts holds one Prop per ground fact, each of form
	// App(UserRel(r), [ground args]).
	Facts []PropId
	// FactsByRel indexes Facts by relation, preserving insertion order,
	// so rule expansion can offer "facts first, in insertion order" per
	// spec.md §4.4's ordering contract.
	FactsByRel map[RelId][]PropId
	// Rules are not indexed by conclusion relation here: RuleIndex builds
	// that index, preserving declaration order, for the same contract's
	// "then rules in declaration order" half. It is rebuilt per active
	// rule set (global, or global ∪ one stage) rather than stored once,
	// since the active rule set changes depending on whether a stage is
	// running (spec.md §9's resolved Open Question).
	StateVars       []string
	StateVarTermIds map[string]TermId

	// CurrentVarMap holds the current substitution's view of each state
	// variable; RunStage updates it atomically on a unique commit.
	CurrentVarMap map[string]TermId
}

// NewProgram creates an empty Program with initialized arenas and tables.
func NewProgram() *Program {
	return &Program{
		Terms:           NewTermStore(),
		Props:           NewPropStore(),
		Rels:            NewRelTable(),
		FactsByRel:      make(map[RelId][]PropId),
		StateVarTermIds: make(map[string]TermId),
		CurrentVarMap:   make(map[string]TermId),
	}
}

// AddFact registers a ground fact prop (which must be of form
// App(UserRel(r), args)) and indexes it under its relation in insertion
// order.
func (p *Program) AddFact(factProp PropId) {
	p.Facts = append(p.Facts, factProp)
	prop := p.Props.Get(factProp)
	p.FactsByRel[prop.Rel] = append(p.FactsByRel[prop.Rel], factProp)
}

// AddRule registers rule and returns its RuleId. Callers add the id to
// GlobalRules or a Stage's Rules to make it active.
func (p *Program) AddRule(r Rule) RuleId {
	p.Rules = append(p.Rules, r)
	return RuleId(len(p.Rules) - 1)
}

// ActiveRuleSet returns the rule ids active while solving outside any
// stage (just GlobalRules) or, when stageIndex names an existing stage,
// the union of GlobalRules and that stage's own rules. A negative or
// out-of-range stageIndex yields GlobalRules alone. "Both apply during a stage"
// per spec.md §9's resolved Open Question: global_rules ∪
// stages[i].rules is the active set when running stage i.
func (p *Program) ActiveRuleSet(stageIndex int) []RuleId {
	if stageIndex < 0 || stageIndex >= len(p.Stages) {
		return p.GlobalRules
	}
	active := make([]RuleId, 0, len(p.GlobalRules)+len(p.Stages[stageIndex].Rules))
	active = append(active, p.GlobalRules...)
	active = append(active, p.Stages[stageIndex].Rules...)
	return active
}

// RuleIndex groups rule ids by conclusion relation, preserving the
// declaration order of ruleIDs, so PropApp expansion can offer "rules in
// declaration order" per spec.md §4.4.
func (p *Program) RuleIndex(ruleIDs []RuleId) map[RelId][]RuleId {
	idx := make(map[RelId][]RuleId)
	for _, rid := range ruleIDs {
		rel := p.Rules[rid].ConclRel
		idx[rel] = append(idx[rel], rid)
	}
	return idx
}

// StageByName returns the index of the stage named name.
func (p *Program) StageByName(name string) (int, bool) {
	for i, s := range p.Stages {
		if s.Name == name {
			return i, true
		}
	}
	return 0, false
}
