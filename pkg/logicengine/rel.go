package logicengine

// RelId indexes into a Program's relation table. Name resolution is
// static: it happens once, in the Builder, never during search.
type RelId int

// RelKind distinguishes a user-defined relation from a built-in one.
type RelKind int

const (
	RelUser RelKind = iota
	RelBuiltin
)

// BuiltinKind enumerates the built-in relations the core evaluates
// specially instead of looking them up in the fact/rule tables.
type BuiltinKind int

const (
	// BuiltinEq posts an equality constraint between its two arguments,
	// the App-form equivalent of Prop's Eq variant.
	BuiltinEq BuiltinKind = iota
	// BuiltinIntAdd posts the ternary linear constraint x + y = z to the
	// arithmetic constraint store.
	BuiltinIntAdd
)

// Rel is a named relation: either a user relation resolved against the
// fact/rule tables by name, or a built-in evaluated directly by the
// scheduler.
type Rel struct {
	Kind    RelKind
	Name    string
	Builtin BuiltinKind
}

// RelTable holds the program's relation symbols, keyed by both id and
// name. It is built once by the Builder and is read-only during search.
type RelTable struct {
	rels   []Rel
	byName map[string]RelId
}

// NewRelTable creates an empty relation table seeded with the built-in
// relations so they always resolve to stable ids.
func NewRelTable() *RelTable {
	rt := &RelTable{byName: make(map[string]RelId)}
	rt.intern(Rel{Kind: RelBuiltin, Name: "=", Builtin: BuiltinEq})
	rt.intern(Rel{Kind: RelBuiltin, Name: "int_add", Builtin: BuiltinIntAdd})
	return rt
}

func (rt *RelTable) intern(r Rel) RelId {
	id := RelId(len(rt.rels))
	rt.rels = append(rt.rels, r)
	rt.byName[r.Name] = id
	return id
}

// UserRel resolves (allocating if necessary) the user relation named
// name, returning its stable RelId.
func (rt *RelTable) UserRel(name string) RelId {
	if id, ok := rt.byName[name]; ok {
		return id
	}
	return rt.intern(Rel{Kind: RelUser, Name: name})
}

// EqRel returns the id of the built-in equality relation.
func (rt *RelTable) EqRel() RelId { id, _ := rt.byName["="]; return id }

// IntAddRel returns the id of the built-in int_add relation.
func (rt *RelTable) IntAddRel() RelId { id, _ := rt.byName["int_add"]; return id }

// Get returns the relation stored at id.
func (rt *RelTable) Get(id RelId) Rel {
	return rt.rels[id]
}

// Lookup resolves a name to a RelId without interning a new one.
func (rt *RelTable) Lookup(name string) (RelId, bool) {
	id, ok := rt.byName[name]
	return id, ok
}
