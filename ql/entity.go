package ql

// Entity addresses a target structure: either a bare model resolved
// against the current space, or a fully qualified space.model pair. The
// identifier slices borrow from the source buffer.
type Entity struct {
	space []byte // nil for a single entity
	model []byte
}

// SingleEntity addresses a model in the current space.
func SingleEntity(model []byte) Entity { return Entity{model: model} }

// FullEntity addresses a model through its space.
func FullEntity(space, model []byte) Entity { return Entity{space: space, model: model} }

// IsFull reports whether the entity carries an explicit space.
func (e Entity) IsFull() bool { return e.space != nil }

// Space returns the space identifier; nil for a single entity.
func (e Entity) Space() []byte { return e.space }

// Model returns the model identifier.
func (e Entity) Model() []byte { return e.model }

func (e Entity) String() string {
	if e.IsFull() {
		return string(e.space) + "." + string(e.model)
	}
	return string(e.model)
}

// AttemptProcessEntity tries to parse an entity at the cursor, writing
// into out on success and poisoning the state otherwise. out is left
// untouched on failure, so callers must check Okay before consuming it.
// Only rounded signature helpers are used, keeping the function total at
// end-of-stream.
func AttemptProcessEntity(state *State, out *Entity) {
	tok := state.Current()
	isFull := state.CursorSignatureMatchEntityFullRounded()
	isSingle := state.CursorHasIdentRounded()
	switch {
	case isFull:
		state.CursorAheadBy(3)
		*out = FullEntity(tok[0].Ident, tok[2].Ident)
	case isSingle:
		state.CursorAhead()
		*out = SingleEntity(tok[0].Ident)
	}
	state.PoisonIfNot(isFull || isSingle)
}

// AttemptProcessEntityResult parses an entity at the cursor, converting
// a poisoned state into ErrExpectedEntity.
func AttemptProcessEntityResult(state *State) (Entity, error) {
	var e Entity
	AttemptProcessEntity(state, &e)
	if state.Okay() {
		return e, nil
	}
	return Entity{}, ErrExpectedEntity
}
