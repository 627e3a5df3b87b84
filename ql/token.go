// Package ql implements the BlueQL query-processing pipeline: the
// two-mode lexer, the cursor-driven parser state, the AST node types for
// DDL and DML, and the compile dispatcher that turns a token stream into
// a Statement.
package ql

import (
	"bytes"
	"fmt"

	"github.com/blueql-db/blueql/data"
)

// TokenKind tags the variant held by a Token.
type TokenKind uint8

const (
	// TokenIdent is an identifier borrowing from the source buffer.
	TokenIdent TokenKind = iota
	// TokenKeyword is a reserved word.
	TokenKeyword
	// TokenSymbol is a single punctuation symbol.
	TokenSymbol
	// TokenLit is an embedded literal (insecure lexer only).
	TokenLit
	// TokenPlaceholder is a `?` parameter marker.
	TokenPlaceholder
	// TokenIgnorableComma never comes out of the lexer; fuzz and test
	// streams use it to mark a position where zero or one comma is
	// acceptable.
	TokenIgnorableComma
)

// Keyword enumerates the reserved words of BlueQL. `force`, `inspect`
// and `spaces` are deliberately not in this set: the grammar matches
// them as case-insensitive identifiers.
type Keyword uint8

const (
	KwUse Keyword = iota
	KwCreate
	KwAlter
	KwDrop
	KwModel
	KwSpace
	KwInsert
	KwSelect
	KwUpdate
	KwDelete
	KwInto
	KwFrom
	KwWhere
	KwSet
	KwWith
	KwAdd
	KwRemove
	KwAnd
)

var keywordNames = map[Keyword]string{
	KwUse:    "use",
	KwCreate: "create",
	KwAlter:  "alter",
	KwDrop:   "drop",
	KwModel:  "model",
	KwSpace:  "space",
	KwInsert: "insert",
	KwSelect: "select",
	KwUpdate: "update",
	KwDelete: "delete",
	KwInto:   "into",
	KwFrom:   "from",
	KwWhere:  "where",
	KwSet:    "set",
	KwWith:   "with",
	KwAdd:    "add",
	KwRemove: "remove",
	KwAnd:    "and",
}

// keywords maps the lowercase spelling to its keyword id. Built once at
// init from keywordNames so the two tables cannot drift.
var keywords = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordNames))
	for kw, name := range keywordNames {
		m[name] = kw
	}
	return m
}()

func (k Keyword) String() string { return keywordNames[k] }

// Symbol enumerates the punctuation tokens.
type Symbol uint8

const (
	SymDot Symbol = iota
	SymComma
	SymOpenParen
	SymCloseParen
	SymOpenSqBracket
	SymCloseSqBracket
	SymOpenBrace
	SymCloseBrace
	SymSemicolon
	SymColon
	SymEq
	SymLt
	SymGt
	SymBang
	SymPlus
	SymMinus
	SymAsterisk
)

var symbolNames = [...]string{
	SymDot:            ".",
	SymComma:          ",",
	SymOpenParen:      "(",
	SymCloseParen:     ")",
	SymOpenSqBracket:  "[",
	SymCloseSqBracket: "]",
	SymOpenBrace:      "{",
	SymCloseBrace:     "}",
	SymSemicolon:      ";",
	SymColon:          ":",
	SymEq:             "=",
	SymLt:             "<",
	SymGt:             ">",
	SymBang:           "!",
	SymPlus:           "+",
	SymMinus:          "-",
	SymAsterisk:       "*",
}

func (s Symbol) String() string { return symbolNames[s] }

// Token is one lexical unit of a query. It is a small value type; the
// Ident payload borrows from the input buffer, so a token slice is only
// valid while the query bytes are alive.
type Token struct {
	Kind  TokenKind
	Kw    Keyword
	Sym   Symbol
	Ident []byte
	Lit   data.Lit
}

func Ident(b []byte) Token { return Token{Kind: TokenIdent, Ident: b} }
func Kw(k Keyword) Token { return Token{Kind: TokenKeyword, Kw: k} }
func Sym(s Symbol) Token { return Token{Kind: TokenSymbol, Sym: s} }
func Lit(l data.Lit) Token { return Token{Kind: TokenLit, Lit: l} }
func Placeholder() Token { return Token{Kind: TokenPlaceholder} }
func IgnorableComma() Token { return Token{Kind: TokenIgnorableComma} }

func (t Token) IsIdent() bool { return t.Kind == TokenIdent }
func (t Token) IsLit() bool { return t.Kind == TokenLit }
func (t Token) IsPlaceholder() bool { return t.Kind == TokenPlaceholder }

func (t Token) IsKw(k Keyword) bool { return t.Kind == TokenKeyword && t.Kw == k }
func (t Token) IsSym(s Symbol) bool { return t.Kind == TokenSymbol && t.Sym == s }

// IdentEqFold reports whether the token is an identifier spelled `s`,
// ignoring ASCII case. Used for the soft words (`force`, `inspect`,
// `spaces`) that are not reserved.
func (t Token) IdentEqFold(s string) bool {
	if t.Kind != TokenIdent || len(t.Ident) != len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if lowerByte(t.Ident[i]) != lowerByte(s[i]) {
			return false
		}
	}
	return true
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b | 0x20
	}
	return b
}

// Eq compares two tokens by kind and payload.
func (t Token) Eq(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TokenIdent:
		return bytes.Equal(t.Ident, o.Ident)
	case TokenKeyword:
		return t.Kw == o.Kw
	case TokenSymbol:
		return t.Sym == o.Sym
	case TokenLit:
		return t.Lit.Eq(o.Lit)
	case TokenPlaceholder, TokenIgnorableComma:
		return true
	}
	return false
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdent:
		return string(t.Ident)
	case TokenKeyword:
		return t.Kw.String()
	case TokenSymbol:
		return t.Sym.String()
	case TokenLit:
		return t.Lit.String()
	case TokenPlaceholder:
		return "?"
	case TokenIgnorableComma:
		return ",?"
	}
	return fmt.Sprintf("<invalid token kind %d>", t.Kind)
}
