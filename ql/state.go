package ql

import "github.com/blueql-db/blueql/data"

// State is the cursor-driven parse state shared by every sub-parser. It
// owns nothing: the token slice is immutable and borrowed, and the data
// adapter supplies literal values either inline or from a parameter
// vector.
//
// The flag is a monotonic poison: it starts true and any sub-parser may
// clear it; once cleared it stays cleared, and the caller must discard
// partially initialized outputs. This lets sub-parsers run speculatively
// without threading early returns through every call.
type State struct {
	t []Token
	d QueryData
	i int
	f bool
}

// NewState builds a parse state over the given tokens and data adapter.
func NewState(t []Token, d QueryData) *State {
	return &State{t: t, d: d, f: true}
}

// NewInplaceState builds a parse state whose literals come from the
// tokens themselves.
func NewInplaceState(t []Token) *State {
	return NewState(t, InplaceData{})
}

// minidx clamps an index into the token slice. With an in-range cursor
// it is the identity; past the end it pins to the last slot so rounded
// helpers can read-then-mask instead of branching.
func (s *State) minidx(i int) int {
	if i >= len(s.t) {
		return len(s.t) - 1
	}
	return i
}

// Okay reports whether the state has not been poisoned.
func (s *State) Okay() bool { return s.f }

// Poison clears the state flag.
func (s *State) Poison() { s.f = false }

// PoisonIf clears the state flag if fuse holds.
func (s *State) PoisonIf(fuse bool) { s.f = s.f && !fuse }

// PoisonIfNot clears the state flag unless fuse holds.
func (s *State) PoisonIfNot(fuse bool) { s.PoisonIf(!fuse) }

// CursorAhead moves the cursor ahead by 1.
func (s *State) CursorAhead() { s.CursorAheadBy(1) }

// CursorAheadBy moves the cursor ahead by the given count.
func (s *State) CursorAheadBy(by int) { s.i += by }

// CursorAheadIf moves the cursor ahead by 1 if iff holds.
func (s *State) CursorAheadIf(iff bool) {
	if iff {
		s.i++
	}
}

// CursorBack moves the cursor back by 1.
func (s *State) CursorBack() { s.CursorBackBy(1) }

// CursorBackBy moves the cursor back by the given count. Only used for
// localized one-token backtracking after a failed lookahead.
func (s *State) CursorBackBy(by int) { s.i -= by }

// Read returns the current token. Caller must have checked NotExhausted.
func (s *State) Read() *Token { return &s.t[s.i] }

// FwRead reads the current token and advances the cursor.
func (s *State) FwRead() *Token {
	r := s.Read()
	s.CursorAhead()
	return r
}

// Current returns the unconsumed tail of the token slice.
func (s *State) Current() []Token { return s.t[s.i:] }

// Remaining returns the number of consumable tokens left.
func (s *State) Remaining() int { return len(s.t) - s.i }

// HasRemaining reports whether at least many tokens are left.
func (s *State) HasRemaining(many int) bool { return s.Remaining() >= many }

// Exhausted reports whether the token stream is spent.
func (s *State) Exhausted() bool { return s.Remaining() == 0 }

// NotExhausted reports whether tokens remain.
func (s *State) NotExhausted() bool { return s.Remaining() != 0 }

// Consumed returns the number of tokens consumed so far.
func (s *State) Consumed() int { return len(s.t) - s.Remaining() }

// Cursor returns the cursor position.
func (s *State) Cursor() int { return s.i }

// LoopTT is the loop condition for token-driven loops: tokens remain and
// the state is not poisoned.
func (s *State) LoopTT() bool { return s.NotExhausted() && s.Okay() }

// LoopDataTT additionally requires the data adapter to be non-empty.
func (s *State) LoopDataTT() bool { return s.LoopTT() && s.d.Nonzero() }

// CursorEq compares the current token against tok. Caller must have
// checked NotExhausted.
func (s *State) CursorEq(tok Token) bool { return s.t[s.i].Eq(tok) }

// CursorRoundedEq compares the current token against tok, treating an
// out-of-range cursor as a non-match. The index is clamped and the
// result masked with the in-range flag instead of branching per call.
func (s *State) CursorRoundedEq(tok Token) bool {
	if len(s.t) == 0 {
		return false
	}
	mx := s.minidx(s.i)
	return s.t[mx].Eq(tok) && mx == s.i
}

// CursorIsIdent reports whether the current token is an identifier.
// Caller must have checked NotExhausted.
func (s *State) CursorIsIdent() bool { return s.Read().IsIdent() }

// CursorHasIdentRounded is the rounded, total variant of CursorIsIdent.
func (s *State) CursorHasIdentRounded() bool {
	if len(s.t) == 0 {
		return false
	}
	return s.t[s.minidx(s.i)].IsIdent() && s.NotExhausted()
}

// CursorSignatureMatchFnArity0Rounded reports whether the stream at the
// cursor matches `ident ( )`. Total for any cursor position: when fewer
// than 3 tokens remain the clamped probes read slot 0 and the result is
// masked off.
func (s *State) CursorSignatureMatchFnArity0Rounded() bool {
	if len(s.t) == 0 {
		return false
	}
	rem := s.HasRemaining(3)
	m := 0
	if rem {
		m = 1
	}
	a, b, c := s.i*m, (s.i+1)*m, (s.i+2)*m
	return s.t[a].IsIdent() && s.t[b].IsSym(SymOpenParen) && s.t[c].IsSym(SymCloseParen) && rem
}

// CursorSignatureMatchEntityFullRounded reports whether the stream at
// the cursor matches `ident . ident`; same rounding discipline as the
// arity-0 helper.
func (s *State) CursorSignatureMatchEntityFullRounded() bool {
	if len(s.t) == 0 {
		return false
	}
	rem := s.HasRemaining(3)
	m := 0
	if rem {
		m = 1
	}
	a, b, c := s.i*m, (s.i+1)*m, (s.i+2)*m
	return s.t[a].IsIdent() && s.t[b].IsSym(SymDot) && s.t[c].IsIdent() && rem
}

// CanReadLitRounded reports whether the current cursor position holds a
// readable literal, with context from the data adapter.
func (s *State) CanReadLitRounded() bool {
	if len(s.t) == 0 {
		return false
	}
	mx := s.minidx(s.i)
	return s.d.CanReadLitFrom(&s.t[mx]) && mx == s.i
}

// CanReadLitFrom reports whether a literal can be read from tok with
// context from the data adapter.
func (s *State) CanReadLitFrom(tok *Token) bool { return s.d.CanReadLitFrom(tok) }

// ReadCursorLit reads a literal at the cursor. Caller must have checked
// CanReadLitRounded.
func (s *State) ReadCursorLit() data.Lit { return s.d.ReadLit(s.Read()) }

// ReadLitFrom reads a literal from the given token. Caller must have
// checked CanReadLitFrom.
func (s *State) ReadLitFrom(tok *Token) data.Lit { return s.d.ReadLit(tok) }

// ReadDatacellFrom reads a literal from the given token as an owned
// Datacell. Caller must have checked CanReadLitFrom.
func (s *State) ReadDatacellFrom(tok *Token) data.Datacell { return s.d.ReadDatacell(tok) }
