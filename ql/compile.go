package ql

// Compile turns a token stream into a Statement, dispatching on the
// head keyword. A stream shorter than two tokens can never form a
// statement and is rejected up front. One error per query; there is no
// recovery.
func Compile(tok []Token, d QueryData) (Statement, error) {
	if len(tok) < 2 {
		return nil, ErrUnexpectedEOS
	}
	state := NewState(tok, d)
	stmt, err := dispatch(state)
	if err != nil {
		return nil, err
	}
	// every statement consumes its whole stream
	if state.NotExhausted() {
		return nil, ErrUnexpectedToken
	}
	return stmt, nil
}

func dispatch(state *State) (Statement, error) {
	switch tok := state.FwRead(); {
	// DDL
	case tok.IsKw(KwUse):
		e, err := AttemptProcessEntityResult(state)
		if err != nil {
			return nil, err
		}
		return UseStmt{Entity: e}, nil
	case tok.IsKw(KwCreate):
		switch next := state.FwRead(); {
		case next.IsKw(KwModel):
			return wrapStmt(parseCreateModel(state))
		case next.IsKw(KwSpace):
			return wrapStmt(parseCreateSpace(state))
		default:
			return nil, ErrStmtUnknownCreate
		}
	case tok.IsKw(KwAlter):
		switch next := state.FwRead(); {
		case next.IsKw(KwModel):
			return wrapStmt(parseAlterModel(state))
		case next.IsKw(KwSpace):
			return wrapStmt(parseAlterSpace(state))
		default:
			return nil, ErrStmtUnknownAlter
		}
	case tok.IsKw(KwDrop) && state.Remaining() >= 2:
		return parseDrop(state)
	case tok.IdentEqFold("inspect"):
		return parseInspect(state)
	// DML
	case tok.IsKw(KwInsert):
		return wrapStmt(parseInsert(state))
	case tok.IsKw(KwSelect):
		return wrapStmt(parseSelect(state))
	case tok.IsKw(KwUpdate):
		return wrapStmt(parseUpdate(state))
	case tok.IsKw(KwDelete):
		return wrapStmt(parseDelete(state))
	default:
		return nil, ErrExpectedStatement
	}
}
