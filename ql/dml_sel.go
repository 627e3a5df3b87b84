package ql

// SelectStatement is `select (* | field, ...) from <entity> [where ...]`.
type SelectStatement struct {
	Entity   Entity
	Fields   [][]byte
	Wildcard bool
	Where    WhereClause
}

func (SelectStatement) stmt() {}

// parseSelect runs with the cursor just past `select`.
func parseSelect(state *State) (SelectStatement, error) {
	var sel SelectStatement
	if state.Exhausted() {
		return sel, ErrUnexpectedEndOfStatement
	}
	if state.CursorEq(Sym(SymAsterisk)) {
		state.CursorAhead()
		sel.Wildcard = true
	} else {
		for {
			if !state.CursorHasIdentRounded() {
				state.Poison()
				break
			}
			sel.Fields = append(sel.Fields, state.FwRead().Ident)
			if !state.CursorRoundedEq(Sym(SymComma)) {
				break
			}
			state.CursorAhead()
		}
	}
	state.PoisonIfNot(state.CursorRoundedEq(Kw(KwFrom)))
	state.CursorAheadIf(state.Okay())
	if !state.Okay() {
		return SelectStatement{}, poisonErr(state)
	}
	e, err := AttemptProcessEntityResult(state)
	if err != nil {
		return SelectStatement{}, err
	}
	sel.Entity = e
	if state.CursorRoundedEq(Kw(KwWhere)) {
		state.CursorAhead()
		sel.Where = parseWhere(state)
	}
	if !state.Okay() {
		return SelectStatement{}, poisonErr(state)
	}
	return sel, nil
}
