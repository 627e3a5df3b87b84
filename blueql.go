// Package blueql is the ingestion facade over the BlueQL core: raw
// query bytes in, a compiled statement out. The server-side network
// layer hands query frames to Compile (trusted, literal-bearing) or
// CompileParameterized (untrusted, placeholder-only); everything past
// the returned Statement — execution, RESP translation, persistence —
// lives above this module.
package blueql

import (
	"github.com/blueql-db/blueql/data"
	"github.com/blueql-db/blueql/ql"
)

// Compile lexes and compiles a query whose literals are embedded in the
// query text. Empty input surfaces as ql.ErrUnexpectedEOS, never a
// panic: only the CLI's naive tokenizer treats empty input as a caller
// bug.
func Compile(src []byte) (ql.Statement, error) {
	tok, err := ql.LexInsecure(src)
	if err != nil {
		return nil, err
	}
	return ql.Compile(tok, ql.InplaceData{})
}

// CompileParameterized lexes a query in safe mode (embedded literals
// rejected) and compiles it against an out-of-band parameter vector.
// The number of `?` placeholders must match the vector exactly;
// any mismatch is ql.ErrParameterCountMismatch.
func CompileParameterized(src []byte, params []data.Lit) (ql.Statement, error) {
	tok, err := ql.LexSafe(src)
	if err != nil {
		return nil, err
	}
	placeholders := 0
	for i := range tok {
		if tok[i].IsPlaceholder() {
			placeholders++
		}
	}
	if placeholders != len(params) {
		return nil, ql.ErrParameterCountMismatch
	}
	return ql.Compile(tok, ql.NewSubstitutedData(params))
}
