package ql

// InspectSpace is `inspect space <ident>`: list the models of a space.
type InspectSpace struct {
	Space []byte
}

func (InspectSpace) stmt() {}

// InspectModel is `inspect model <entity>`: return a model definition.
type InspectModel struct {
	Entity Entity
}

func (InspectModel) stmt() {}

// InspectSpaces is `inspect spaces`: list every space.
type InspectSpaces struct{}

func (InspectSpaces) stmt() {}

// parseInspect runs with the cursor just past the `inspect` identifier.
//
//	inspect model <entity>
//	inspect space <ident>
//	inspect spaces
func parseInspect(state *State) (Statement, error) {
	if state.Remaining() < 1 {
		return nil, ErrUnexpectedEndOfStatement
	}
	switch tok := state.FwRead(); {
	case tok.IsKw(KwModel):
		e, err := AttemptProcessEntityResult(state)
		if err != nil {
			return nil, err
		}
		return InspectModel{Entity: e}, nil
	case tok.IsKw(KwSpace):
		if !state.CursorHasIdentRounded() {
			return nil, ErrUnexpectedEndOfStatement
		}
		return InspectSpace{Space: state.FwRead().Ident}, nil
	case tok.IdentEqFold("spaces"):
		if state.NotExhausted() {
			return nil, ErrUnexpectedToken
		}
		return InspectSpaces{}, nil
	default:
		// back up one token so the error points at the branch word
		state.CursorBack()
		return nil, ErrExpectedStatement
	}
}
