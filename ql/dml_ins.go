package ql

// FieldValue is one `field: value` pair of a map-form insert.
type FieldValue struct {
	Field []byte
	Value DataValue
}

// InsertStatement is `insert into <entity> ( values... )` or
// `insert into <entity> { field: value, ... }`. Exactly one of Tuple
// and Map is populated.
type InsertStatement struct {
	Entity Entity
	Tuple  []DataValue
	Map    []FieldValue
}

func (InsertStatement) stmt() {}

// parseInsert runs with the cursor just past `insert`.
func parseInsert(state *State) (InsertStatement, error) {
	var ins InsertStatement
	state.PoisonIfNot(state.CursorRoundedEq(Kw(KwInto)))
	state.CursorAheadIf(state.Okay())
	if !state.Okay() {
		return ins, poisonErr(state)
	}
	e, err := AttemptProcessEntityResult(state)
	if err != nil {
		return ins, err
	}
	ins.Entity = e
	switch {
	case state.CursorRoundedEq(Sym(SymOpenParen)):
		state.CursorAhead()
		ins.Tuple = parseDataTuple(state)
	case state.CursorRoundedEq(Sym(SymOpenBrace)):
		state.CursorAhead()
		ins.Map = parseDataMap(state)
	default:
		state.Poison()
	}
	if !state.Okay() {
		return InsertStatement{}, poisonErr(state)
	}
	return ins, nil
}

// parseDataTuple parses `value, value, ... )` with the cursor just past
// the opening paren. Separating commas are mandatory, exactly one
// between values.
func parseDataTuple(state *State) []DataValue {
	var vals []DataValue
	for state.LoopTT() {
		vals = append(vals, parseDataValue(state))
		if !state.LoopTT() {
			break
		}
		if state.CursorEq(Sym(SymCloseParen)) {
			state.CursorAhead()
			return vals
		}
		sep := state.CursorEq(Sym(SymComma)) || state.CursorEq(IgnorableComma())
		state.PoisonIfNot(sep)
		state.CursorAheadIf(sep)
	}
	state.Poison()
	return nil
}

// parseDataMap parses `field: value, ... }` with the cursor just past
// the opening brace. Separators follow dict rules: zero or one comma.
func parseDataMap(state *State) []FieldValue {
	var fvs []FieldValue
	first := true
	for state.LoopTT() {
		if state.CursorEq(Sym(SymCloseBrace)) {
			state.CursorAhead()
			if len(fvs) == 0 {
				state.Poison()
				return nil
			}
			return fvs
		}
		if !first {
			sepRounded(state)
			if !state.NotExhausted() {
				break
			}
			if state.CursorEq(Sym(SymCloseBrace)) {
				state.CursorAhead()
				return fvs
			}
		}
		first = false
		var fv FieldValue
		if !state.CursorIsIdent() {
			break
		}
		fv.Field = state.FwRead().Ident
		state.PoisonIfNot(state.CursorRoundedEq(Sym(SymColon)))
		state.CursorAheadIf(state.Okay())
		if !state.Okay() {
			return nil
		}
		fv.Value = parseDataValue(state)
		if !state.Okay() {
			return nil
		}
		fvs = append(fvs, fv)
	}
	state.Poison()
	return nil
}
