package ql

// CreateSpace is `create space <ident> [with <dict>]`.
type CreateSpace struct {
	Space []byte
	Props Dict
}

func (CreateSpace) stmt() {}

// CreateModel is `create model <entity> ( <fields> ) [with <dict>]`.
type CreateModel struct {
	Entity Entity
	Fields []Field
	Props  Dict
}

func (CreateModel) stmt() {}

// poisonErr converts a poisoned state into the error the caller
// surfaces: a premature end of stream or an offending token.
func poisonErr(state *State) error {
	if state.Exhausted() {
		return ErrUnexpectedEndOfStatement
	}
	return ErrUnexpectedToken
}

// parseCreateSpace runs with the cursor just past `create space`.
func parseCreateSpace(state *State) (CreateSpace, error) {
	var c CreateSpace
	if !state.CursorHasIdentRounded() {
		return c, ErrUnexpectedEndOfStatement
	}
	c.Space = state.FwRead().Ident
	if state.NotExhausted() && state.CursorEq(Kw(KwWith)) {
		state.CursorAhead()
		c.Props = parseDict(state)
	}
	if !state.Okay() {
		return CreateSpace{}, poisonErr(state)
	}
	return c, nil
}

// parseCreateModel runs with the cursor just past `create model`.
func parseCreateModel(state *State) (CreateModel, error) {
	var c CreateModel
	e, err := AttemptProcessEntityResult(state)
	if err != nil {
		return c, err
	}
	c.Entity = e
	c.Fields = parseFieldList(state)
	if state.Okay() && state.NotExhausted() && state.CursorEq(Kw(KwWith)) {
		state.CursorAhead()
		c.Props = parseDict(state)
	}
	if !state.Okay() {
		return CreateModel{}, poisonErr(state)
	}
	return c, nil
}
