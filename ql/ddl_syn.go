package ql

import "github.com/blueql-db/blueql/data"

// DictValueKind tags the value variant of a dict entry.
type DictValueKind uint8

const (
	DictValLit DictValueKind = iota
	DictValIdent
	DictValMap
)

// DictEntry is one `key: value` pair of a property dict. Values are
// literals (read through the data adapter), bare identifiers (type
// names inside layer dicts), or nested dicts.
type DictEntry struct {
	Key   []byte
	Kind  DictValueKind
	Lit   data.Datacell
	Ident []byte
	Map   *Dict
}

// Dict is an ordered property dictionary: `{ key: value, ... }`.
// Entry separators are zero-or-one comma.
type Dict struct {
	Entries []DictEntry
}

// Get returns the entry for key, or nil.
func (d *Dict) Get(key string) *DictEntry {
	for i := range d.Entries {
		if string(d.Entries[i].Key) == key {
			return &d.Entries[i]
		}
	}
	return nil
}

// sepRounded consumes at most one separator comma at the cursor. The
// IgnorableComma marker counts as a comma here: both mark a position
// where zero or one real comma is acceptable.
func sepRounded(state *State) {
	ate := state.CursorRoundedEq(Sym(SymComma)) || state.CursorRoundedEq(IgnorableComma())
	state.CursorAheadIf(ate)
}

// parseDict parses `{ key: value, ... }` with the cursor on the opening
// brace. On failure the state is poisoned and the partial dict must be
// discarded.
func parseDict(state *State) Dict {
	var d Dict
	state.PoisonIfNot(state.CursorRoundedEq(Sym(SymOpenBrace)))
	state.CursorAheadIf(state.Okay())
	first := true
	for state.LoopTT() {
		if state.CursorEq(Sym(SymCloseBrace)) {
			state.CursorAhead()
			return d
		}
		if !first {
			sepRounded(state)
			if !state.NotExhausted() {
				break
			}
			if state.CursorEq(Sym(SymCloseBrace)) {
				state.CursorAhead()
				return d
			}
		}
		first = false
		d.Entries = append(d.Entries, parseDictEntry(state))
	}
	state.Poison()
	return d
}

func parseDictEntry(state *State) DictEntry {
	var e DictEntry
	if !state.CursorHasIdentRounded() {
		state.Poison()
		return e
	}
	e.Key = state.FwRead().Ident
	state.PoisonIfNot(state.CursorRoundedEq(Sym(SymColon)))
	state.CursorAheadIf(state.Okay())
	if !state.Okay() || state.Exhausted() {
		state.Poison()
		return e
	}
	switch {
	case state.CanReadLitRounded():
		e.Kind = DictValLit
		e.Lit = state.ReadDatacellFrom(state.Read())
		state.CursorAhead()
	case state.CursorEq(Sym(SymOpenBrace)):
		e.Kind = DictValMap
		m := parseDict(state)
		e.Map = &m
	case state.CursorIsIdent():
		e.Kind = DictValIdent
		e.Ident = state.FwRead().Ident
	default:
		state.Poison()
	}
	return e
}

// Layer is the type expression of a field: a type identifier with
// optional properties, e.g. `string` or `list { type: string }`.
type Layer struct {
	Type  []byte
	Props *Dict
}

// Field is one `name: layer` declaration in a model body.
type Field struct {
	Name  []byte
	Layer Layer
}

func parseLayer(state *State) Layer {
	var l Layer
	if !state.CursorHasIdentRounded() {
		state.Poison()
		return l
	}
	l.Type = state.FwRead().Ident
	if state.CursorRoundedEq(Sym(SymOpenBrace)) {
		p := parseDict(state)
		l.Props = &p
	}
	return l
}

func parseField(state *State) Field {
	var f Field
	if !state.CursorHasIdentRounded() {
		state.Poison()
		return f
	}
	f.Name = state.FwRead().Ident
	state.PoisonIfNot(state.CursorRoundedEq(Sym(SymColon)))
	state.CursorAheadIf(state.Okay())
	if state.Okay() {
		f.Layer = parseLayer(state)
	}
	return f
}

// parseFieldList parses `( field, ... )` with the cursor on the opening
// paren. At least one field is required; separators are zero-or-one
// comma like dicts.
func parseFieldList(state *State) []Field {
	state.PoisonIfNot(state.CursorRoundedEq(Sym(SymOpenParen)))
	state.CursorAheadIf(state.Okay())
	var fields []Field
	first := true
	for state.LoopTT() {
		if state.CursorEq(Sym(SymCloseParen)) {
			state.CursorAhead()
			state.PoisonIf(len(fields) == 0)
			return fields
		}
		if !first {
			sepRounded(state)
			if !state.NotExhausted() {
				break
			}
			if state.CursorEq(Sym(SymCloseParen)) {
				state.CursorAhead()
				state.PoisonIf(len(fields) == 0)
				return fields
			}
		}
		first = false
		fields = append(fields, parseField(state))
	}
	state.Poison()
	return fields
}
