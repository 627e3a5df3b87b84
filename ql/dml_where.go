package ql

import "github.com/blueql-db/blueql/data"

// DataValue is a value position in a DML statement: a literal (inline
// or substituted through the adapter) or an arity-0 producer call such
// as `uuidv4()`, resolved by the executor at run time.
type DataValue struct {
	Cell data.Datacell
	Fn   []byte // non-nil: producer call, Cell is unset
}

// IsFn reports whether the value is a producer call.
func (v DataValue) IsFn() bool { return v.Fn != nil }

// parseDataValue parses one value position. Poisons on anything that is
// neither a readable literal nor an `ident()` call.
func parseDataValue(state *State) DataValue {
	var v DataValue
	switch {
	case state.CursorSignatureMatchFnArity0Rounded():
		v.Fn = state.Read().Ident
		state.CursorAheadBy(3)
	case state.CanReadLitRounded():
		v.Cell = state.ReadDatacellFrom(state.Read())
		state.CursorAhead()
	default:
		state.Poison()
	}
	return v
}

// RelOp is a relational operator in a where clause.
type RelOp uint8

const (
	RelEq RelOp = iota
	RelNe
	RelLt
	RelGt
	RelLe
	RelGe
)

var relOpNames = [...]string{"=", "!=", "<", ">", "<=", ">="}

func (o RelOp) String() string { return relOpNames[o] }

// RelationalExpr is one `field <op> value` condition.
type RelationalExpr struct {
	Field []byte
	Op    RelOp
	Value DataValue
}

// WhereClause is an `and`-joined list of conditions.
type WhereClause struct {
	Exprs []RelationalExpr
}

// parseRelOp decodes `=`, `!=`, `<`, `<=`, `>`, `>=` from one or two
// symbol tokens.
func parseRelOp(state *State) RelOp {
	if state.Exhausted() {
		state.Poison()
		return RelEq
	}
	switch tok := state.FwRead(); {
	case tok.IsSym(SymEq):
		return RelEq
	case tok.IsSym(SymBang):
		state.PoisonIfNot(state.CursorRoundedEq(Sym(SymEq)))
		state.CursorAheadIf(state.Okay())
		return RelNe
	case tok.IsSym(SymLt):
		if state.CursorRoundedEq(Sym(SymEq)) {
			state.CursorAhead()
			return RelLe
		}
		return RelLt
	case tok.IsSym(SymGt):
		if state.CursorRoundedEq(Sym(SymEq)) {
			state.CursorAhead()
			return RelGe
		}
		return RelGt
	default:
		state.Poison()
		return RelEq
	}
}

// parseWhere parses the condition list with the cursor just past the
// `where` keyword. At least one condition is required.
func parseWhere(state *State) WhereClause {
	var w WhereClause
	for {
		if !state.CursorHasIdentRounded() {
			state.Poison()
			return w
		}
		var e RelationalExpr
		e.Field = state.FwRead().Ident
		e.Op = parseRelOp(state)
		if state.Okay() {
			e.Value = parseDataValue(state)
		}
		if !state.Okay() {
			return w
		}
		w.Exprs = append(w.Exprs, e)
		if !state.CursorRoundedEq(Kw(KwAnd)) {
			return w
		}
		state.CursorAhead()
	}
}
