package ql

// AssignOp is an assignment operator in an update expression.
type AssignOp uint8

const (
	AssignSet AssignOp = iota // =
	AssignAdd                 // +=
	AssignSub                 // -=
)

var assignOpNames = [...]string{"=", "+=", "-="}

func (o AssignOp) String() string { return assignOpNames[o] }

// AssignmentExpr is one `field <op> value` of an update's set list.
type AssignmentExpr struct {
	Field []byte
	Op    AssignOp
	Value DataValue
}

// UpdateStatement is `update <entity> set <assignments> where <conds>`.
// The where clause is mandatory.
type UpdateStatement struct {
	Entity      Entity
	Assignments []AssignmentExpr
	Where       WhereClause
}

func (UpdateStatement) stmt() {}

// parseAssignOp decodes `=`, `+=`, `-=`.
func parseAssignOp(state *State) AssignOp {
	if state.Exhausted() {
		state.Poison()
		return AssignSet
	}
	switch tok := state.FwRead(); {
	case tok.IsSym(SymEq):
		return AssignSet
	case tok.IsSym(SymPlus):
		state.PoisonIfNot(state.CursorRoundedEq(Sym(SymEq)))
		state.CursorAheadIf(state.Okay())
		return AssignAdd
	case tok.IsSym(SymMinus):
		state.PoisonIfNot(state.CursorRoundedEq(Sym(SymEq)))
		state.CursorAheadIf(state.Okay())
		return AssignSub
	default:
		state.Poison()
		return AssignSet
	}
}

// parseUpdate runs with the cursor just past `update`.
func parseUpdate(state *State) (UpdateStatement, error) {
	var upd UpdateStatement
	e, err := AttemptProcessEntityResult(state)
	if err != nil {
		return upd, err
	}
	upd.Entity = e
	state.PoisonIfNot(state.CursorRoundedEq(Kw(KwSet)))
	state.CursorAheadIf(state.Okay())
	for state.Okay() {
		var a AssignmentExpr
		if !state.CursorHasIdentRounded() {
			state.Poison()
			break
		}
		a.Field = state.FwRead().Ident
		a.Op = parseAssignOp(state)
		if state.Okay() {
			a.Value = parseDataValue(state)
		}
		if !state.Okay() {
			break
		}
		upd.Assignments = append(upd.Assignments, a)
		if !state.CursorRoundedEq(Sym(SymComma)) {
			break
		}
		state.CursorAhead()
	}
	state.PoisonIfNot(state.CursorRoundedEq(Kw(KwWhere)))
	state.CursorAheadIf(state.Okay())
	if state.Okay() {
		upd.Where = parseWhere(state)
	}
	if !state.Okay() {
		return UpdateStatement{}, poisonErr(state)
	}
	return upd, nil
}
