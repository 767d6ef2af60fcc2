// Package logicengine implements a small relational logic engine with a
// staged, stateful execution model: ground facts, named inference rules,
// and per-stage state constraints that advance a vector of named state
// variables. See SPEC_FULL.md for the full specification this package
// implements.
package logicengine

import (
	"math"
)

// TermId is an arena index into a TermStore. Ids are stable for the
// lifetime of the store; structural sharing of subterms is allowed but
// not required.
type TermId int

// TermKind distinguishes the variants of Term described in spec.md §3.
type TermKind int

const (
	// KindVar marks an ordinary logic variable, unbound until a
	// Substitution extends it.
	KindVar TermKind = iota
	// KindTemplateVar marks a placeholder inside a Rule's premise/conclusion
	// template. It never appears in a fact, a query goal, or a Substitution
	// binding — Rule.instantiate substitutes it away into a fresh KindVar.
	KindTemplateVar
	KindAtom
	KindInt
	KindFloat
	KindApp
)

// Term is one node of the logic universe: a variable, an atom, an integer,
// a float, or the application of a relation to sub-terms.
type Term struct {
	Kind TermKind

	// Name carries the optional debug name of a Var/TemplateVar.
	Name string
	// Slot identifies a KindTemplateVar within its owning Rule's template;
	// it is the index into the fresh-var block allocated on instantiation.
	Slot int

	Atom string

	Int int32

	Float float32

	Rel  RelId
	Args []TermId
}

// TermStore is the arena backing every Term allocated while compiling or
// solving a Program. TermIds are indices into terms and remain valid for
// the lifetime of the store.
type TermStore struct {
	terms []Term
}

// NewTermStore creates an empty term arena.
func NewTermStore() *TermStore {
	return &TermStore{}
}

// Alloc allocates and returns the id of a new term.
func (ts *TermStore) Alloc(t Term) TermId {
	ts.terms = append(ts.terms, t)
	return TermId(len(ts.terms) - 1)
}

// Get returns the term stored at id. It panics on an out-of-range id,
// which indicates a compiler or engine bug rather than a recoverable
// runtime condition.
func (ts *TermStore) Get(id TermId) Term {
	return ts.terms[id]
}

// NewVar allocates a fresh, unbound logic variable with an optional
// debug name.
func (ts *TermStore) NewVar(name string) TermId {
	return ts.Alloc(Term{Kind: KindVar, Name: name})
}

// NewTemplateVar allocates a rule-template placeholder for the given slot.
// Builder.RuleVar is the intended caller; other code should not need it.
func (ts *TermStore) NewTemplateVar(slot int, name string) TermId {
	return ts.Alloc(Term{Kind: KindTemplateVar, Slot: slot, Name: name})
}

// NewAtom allocates an atomic symbolic constant.
func (ts *TermStore) NewAtom(text string) TermId {
	return ts.Alloc(Term{Kind: KindAtom, Atom: text})
}

// NewInt allocates an integer literal.
func (ts *TermStore) NewInt(v int32) TermId {
	return ts.Alloc(Term{Kind: KindInt, Int: v})
}

// NewFloat allocates a floating point literal.
func (ts *TermStore) NewFloat(v float32) TermId {
	return ts.Alloc(Term{Kind: KindFloat, Float: v})
}

// NewApp allocates the application of rel to args.
func (ts *TermStore) NewApp(rel RelId, args ...TermId) TermId {
	a := make([]TermId, len(args))
	copy(a, args)
	return ts.Alloc(Term{Kind: KindApp, Rel: rel, Args: a})
}

// floatBits compares floats by bit pattern, per spec.md §4.1: "Floats
// compare by bit-equality of their value representation to avoid NaN
// surprises." This also means -0.0 and +0.0 compare unequal and NaN
// unifies with itself — a deliberate, documented choice (see DESIGN.md)
// rather than an IEEE-754 comparison.
func floatBits(f float32) uint32 {
	return math.Float32bits(f)
}

// DebugKind renders just the variant tag of a term, for diagnostics and
// log lines; the user-visible, substitution-aware form lives in reify.go.
func (ts *TermStore) DebugKind(id TermId) string {
	switch ts.Get(id).Kind {
	case KindVar:
		return "Var"
	case KindTemplateVar:
		return "TemplateVar"
	case KindAtom:
		return "Atom"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindApp:
		return "App"
	default:
		return "?"
	}
}
