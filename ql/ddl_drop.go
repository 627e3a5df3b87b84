package ql

// DropSpace is `drop space <ident> [force]`. force is an optional
// trailing identifier matched case-insensitively; the stream must be
// exhausted after it.
type DropSpace struct {
	Space []byte
	Force bool
}

func (DropSpace) stmt() {}

// DropModel is `drop model <entity> [force]`.
type DropModel struct {
	Entity Entity
	Force  bool
}

func (DropModel) stmt() {}

// cursorRoundedForce reports whether the cursor holds the soft keyword
// `force`.
func cursorRoundedForce(state *State) bool {
	if len(state.t) == 0 {
		return false
	}
	mx := state.minidx(state.i)
	return state.t[mx].IdentEqFold("force") && mx == state.i
}

// parseDropModel runs with the cursor just past `drop model`.
func parseDropModel(state *State) (DropModel, error) {
	e, err := AttemptProcessEntityResult(state)
	if err != nil {
		return DropModel{}, err
	}
	force := cursorRoundedForce(state)
	state.CursorAheadIf(force)
	// either `force` or nothing may remain
	if !state.Exhausted() {
		return DropModel{}, ErrUnexpectedToken
	}
	return DropModel{Entity: e, Force: force}, nil
}

// parseDropSpace runs with the cursor just past `drop space`.
func parseDropSpace(state *State) (DropSpace, error) {
	if !state.CursorHasIdentRounded() {
		return DropSpace{}, ErrUnexpectedToken
	}
	ident := state.FwRead().Ident
	force := cursorRoundedForce(state)
	state.CursorAheadIf(force)
	if !state.Exhausted() {
		return DropSpace{}, ErrUnexpectedToken
	}
	return DropSpace{Space: ident, Force: force}, nil
}

// parseDrop dispatches `drop (model | space) ...`. The compiler
// guarantees at least one token remains.
func parseDrop(state *State) (Statement, error) {
	switch tok := state.FwRead(); {
	case tok.IsKw(KwModel):
		return wrapStmt(parseDropModel(state))
	case tok.IsKw(KwSpace):
		return wrapStmt(parseDropSpace(state))
	default:
		return nil, ErrUnexpectedToken
	}
}

// wrapStmt lifts a typed parse result into the Statement interface
// without masking its error.
func wrapStmt[T Statement](v T, err error) (Statement, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}
