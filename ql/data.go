package ql

import "github.com/blueql-db/blueql/data"

// QueryData supplies literal values during a parse. The inline adapter
// reads them out of the tokens; the substituted adapter pairs `?`
// placeholders with a pre-parsed parameter vector.
//
// ReadLit and ReadDatacell have a precondition: the caller verified
// CanReadLitFrom for the same token. The adapter itself only reports
// Nonzero; under- or over-supply of parameters is the caller's problem
// (see CompileParameterized).
type QueryData interface {
	CanReadLitFrom(tok *Token) bool
	ReadLit(tok *Token) data.Lit
	ReadDatacell(tok *Token) data.Datacell
	Nonzero() bool
}

// InplaceData reads literals straight from the token stream. Pairs with
// the insecure lexer.
type InplaceData struct{}

func (InplaceData) CanReadLitFrom(tok *Token) bool { return tok.IsLit() }

func (InplaceData) ReadLit(tok *Token) data.Lit { return tok.Lit }

func (InplaceData) ReadDatacell(tok *Token) data.Datacell { return data.CellFromLit(tok.Lit) }

func (InplaceData) Nonzero() bool { return true }

// SubstitutedData feeds literals from a parameter vector, consumed from
// the front as `?` placeholders are encountered. Pairs with the safe
// lexer; pairing it with an insecure token stream is a usage error.
type SubstitutedData struct {
	params []data.Lit
}

// NewSubstitutedData wraps the given parameter vector. The slice is
// consumed in place as the parse progresses.
func NewSubstitutedData(params []data.Lit) *SubstitutedData {
	return &SubstitutedData{params: params}
}

func (d *SubstitutedData) CanReadLitFrom(tok *Token) bool {
	return tok.IsPlaceholder() && d.Nonzero()
}

func (d *SubstitutedData) ReadLit(tok *Token) data.Lit {
	ret := d.params[0]
	d.params = d.params[1:]
	return ret
}

func (d *SubstitutedData) ReadDatacell(tok *Token) data.Datacell {
	return data.CellFromLit(d.ReadLit(tok))
}

func (d *SubstitutedData) Nonzero() bool { return len(d.params) != 0 }
