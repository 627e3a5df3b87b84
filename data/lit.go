// Package data holds the value representations shared by the query
// pipeline and the storage layer: Lit, the borrowed literal produced by
// the lexer and consumed by the parser, and Datacell, the owned value
// handed to the executor.
package data

import (
	"bytes"
	"fmt"
	"strconv"
)

// LitKind tags the variant held by a Lit.
type LitKind uint8

const (
	LitStr LitKind = iota
	LitBin
	LitBool
	LitUInt
	LitSInt
	LitFloat
	LitNull
)

func (k LitKind) String() string {
	switch k {
	case LitStr:
		return "str"
	case LitBin:
		return "bin"
	case LitBool:
		return "bool"
	case LitUInt:
		return "uint"
	case LitSInt:
		return "sint"
	case LitFloat:
		return "float"
	case LitNull:
		return "null"
	default:
		return "invalid"
	}
}

// Lit is the intermediate representation of a literal value. String
// payloads borrow from the source buffer whenever the literal needed no
// unescaping, so a Lit is only valid for the lifetime of the query bytes
// it was lexed from. Binary payloads are hex-decoded into fresh bytes.
type Lit struct {
	kind LitKind
	b    []byte // LitStr (utf-8 bytes), LitBin
	u    uint64
	i    int64
	f    float64
	bo   bool
}

func StrLit(b []byte) Lit { return Lit{kind: LitStr, b: b} }
func BinLit(b []byte) Lit { return Lit{kind: LitBin, b: b} }
func BoolLit(v bool) Lit { return Lit{kind: LitBool, bo: v} }
func UIntLit(v uint64) Lit { return Lit{kind: LitUInt, u: v} }
func SIntLit(v int64) Lit { return Lit{kind: LitSInt, i: v} }
func FloatLit(v float64) Lit { return Lit{kind: LitFloat, f: v} }
func NullLit() Lit { return Lit{kind: LitNull} }

func (l Lit) Kind() LitKind { return l.kind }
func (l Lit) Str() []byte { return l.b }
func (l Lit) Bin() []byte { return l.b }
func (l Lit) Bool() bool { return l.bo }
func (l Lit) UInt() uint64 { return l.u }
func (l Lit) SInt() int64 { return l.i }
func (l Lit) Float() float64 { return l.f }

// Eq compares two literals by kind and payload.
func (l Lit) Eq(o Lit) bool {
	if l.kind != o.kind {
		return false
	}
	switch l.kind {
	case LitStr, LitBin:
		return bytes.Equal(l.b, o.b)
	case LitBool:
		return l.bo == o.bo
	case LitUInt:
		return l.u == o.u
	case LitSInt:
		return l.i == o.i
	case LitFloat:
		return l.f == o.f
	case LitNull:
		return true
	}
	return false
}

func (l Lit) String() string {
	switch l.kind {
	case LitStr:
		return strconv.Quote(string(l.b))
	case LitBin:
		return fmt.Sprintf("0x%x", l.b)
	case LitBool:
		return strconv.FormatBool(l.bo)
	case LitUInt:
		return strconv.FormatUint(l.u, 10)
	case LitSInt:
		return strconv.FormatInt(l.i, 10)
	case LitFloat:
		return strconv.FormatFloat(l.f, 'g', -1, 64)
	case LitNull:
		return "null"
	}
	return "<invalid lit>"
}
