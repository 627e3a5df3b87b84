package ql

// AlterSpace is `alter space <ident> with <dict>`.
type AlterSpace struct {
	Space []byte
	Props Dict
}

func (AlterSpace) stmt() {}

// AlterKind selects the alter-model action.
type AlterKind uint8

const (
	AlterAdd AlterKind = iota
	AlterUpdate
	AlterRemove
)

// AlterModel is `alter model <entity> add|update|remove ...`. Add and
// update carry field declarations; remove carries field names.
type AlterModel struct {
	Entity  Entity
	Kind    AlterKind
	Fields  []Field
	Removed [][]byte
}

func (AlterModel) stmt() {}

// parseAlterSpace runs with the cursor just past `alter space`.
func parseAlterSpace(state *State) (AlterSpace, error) {
	var a AlterSpace
	if !state.CursorHasIdentRounded() {
		return a, ErrUnexpectedEndOfStatement
	}
	a.Space = state.FwRead().Ident
	state.PoisonIfNot(state.CursorRoundedEq(Kw(KwWith)))
	state.CursorAheadIf(state.Okay())
	if state.Okay() {
		a.Props = parseDict(state)
	}
	if !state.Okay() {
		return AlterSpace{}, poisonErr(state)
	}
	return a, nil
}

// parseAlterModel runs with the cursor just past `alter model`.
func parseAlterModel(state *State) (AlterModel, error) {
	var a AlterModel
	e, err := AttemptProcessEntityResult(state)
	if err != nil {
		return a, err
	}
	a.Entity = e
	if state.Exhausted() {
		return a, ErrUnexpectedEndOfStatement
	}
	switch tok := state.FwRead(); {
	case tok.IsKw(KwAdd):
		a.Kind = AlterAdd
		a.Fields = parseFieldGroup(state)
	case tok.IsKw(KwUpdate):
		a.Kind = AlterUpdate
		a.Fields = parseFieldGroup(state)
	case tok.IsKw(KwRemove):
		a.Kind = AlterRemove
		a.Removed = parseIdentGroup(state)
	default:
		state.Poison()
	}
	if !state.Okay() {
		return AlterModel{}, poisonErr(state)
	}
	return a, nil
}

// parseFieldGroup accepts either a single field declaration or a
// parenthesized list of them.
func parseFieldGroup(state *State) []Field {
	if state.CursorRoundedEq(Sym(SymOpenParen)) {
		return parseFieldList(state)
	}
	f := parseField(state)
	if !state.Okay() {
		return nil
	}
	return []Field{f}
}

// parseIdentGroup accepts a single identifier or `( ident, ... )` with
// the usual zero-or-one comma separators.
func parseIdentGroup(state *State) [][]byte {
	if state.CursorHasIdentRounded() {
		return [][]byte{state.FwRead().Ident}
	}
	state.PoisonIfNot(state.CursorRoundedEq(Sym(SymOpenParen)))
	state.CursorAheadIf(state.Okay())
	var idents [][]byte
	first := true
	for state.LoopTT() {
		if state.CursorEq(Sym(SymCloseParen)) {
			state.CursorAhead()
			state.PoisonIf(len(idents) == 0)
			return idents
		}
		if !first {
			sepRounded(state)
			if !state.NotExhausted() {
				break
			}
			if state.CursorEq(Sym(SymCloseParen)) {
				state.CursorAhead()
				state.PoisonIf(len(idents) == 0)
				return idents
			}
		}
		first = false
		if !state.CursorIsIdent() {
			break
		}
		idents = append(idents, state.FwRead().Ident)
	}
	state.Poison()
	return nil
}
