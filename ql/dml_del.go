package ql

// DeleteStatement is `delete from <entity> where <conds>`. The where
// clause is mandatory.
type DeleteStatement struct {
	Entity Entity
	Where  WhereClause
}

func (DeleteStatement) stmt() {}

// parseDelete runs with the cursor just past `delete`.
func parseDelete(state *State) (DeleteStatement, error) {
	var del DeleteStatement
	state.PoisonIfNot(state.CursorRoundedEq(Kw(KwFrom)))
	state.CursorAheadIf(state.Okay())
	if !state.Okay() {
		return del, poisonErr(state)
	}
	e, err := AttemptProcessEntityResult(state)
	if err != nil {
		return del, err
	}
	del.Entity = e
	state.PoisonIfNot(state.CursorRoundedEq(Kw(KwWhere)))
	state.CursorAheadIf(state.Okay())
	if state.Okay() {
		del.Where = parseWhere(state)
	}
	if !state.Okay() {
		return DeleteStatement{}, poisonErr(state)
	}
	return del, nil
}
