package blueql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueql-db/blueql/data"
	"github.com/blueql-db/blueql/ql"
)

func TestCompile_EndToEnd(t *testing.T) {
	t.Run("use qualified model", func(t *testing.T) {
		stmt, err := Compile([]byte("use space.model"))
		require.NoError(t, err)
		use, ok := stmt.(ql.UseStmt)
		require.True(t, ok)
		assert.Equal(t, ql.FullEntity([]byte("space"), []byte("model")), use.Entity)
	})
	t.Run("drop model with force", func(t *testing.T) {
		stmt, err := Compile([]byte("drop model foo.bar force"))
		require.NoError(t, err)
		assert.Equal(t, ql.DropModel{Entity: ql.FullEntity([]byte("foo"), []byte("bar")), Force: true}, stmt)
	})
	t.Run("drop space", func(t *testing.T) {
		stmt, err := Compile([]byte("drop space mydata"))
		require.NoError(t, err)
		assert.Equal(t, ql.DropSpace{Space: []byte("mydata")}, stmt)
	})
	t.Run("inspect spaces", func(t *testing.T) {
		stmt, err := Compile([]byte("inspect spaces"))
		require.NoError(t, err)
		assert.Equal(t, ql.InspectSpaces{}, stmt)
	})
	t.Run("empty input is an error, not a panic", func(t *testing.T) {
		_, err := Compile(nil)
		assert.ErrorIs(t, err, ql.ErrUnexpectedEOS)
	})
	t.Run("lex errors propagate", func(t *testing.T) {
		_, err := Compile([]byte("use 'oops"))
		assert.ErrorIs(t, err, ql.ErrUnterminatedString)
	})
}

func TestCompileParameterized(t *testing.T) {
	t.Run("substituted insert", func(t *testing.T) {
		stmt, err := CompileParameterized(
			[]byte("insert into foo (?, ?)"),
			[]data.Lit{data.UIntLit(1), data.StrLit([]byte("hi"))},
		)
		require.NoError(t, err)
		ins, ok := stmt.(ql.InsertStatement)
		require.True(t, ok)
		require.Len(t, ins.Tuple, 2)
		assert.True(t, ins.Tuple[0].Cell.Eq(data.UIntCell(1)))
		assert.True(t, ins.Tuple[1].Cell.Eq(data.StrCell("hi")))
	})
	t.Run("too few parameters", func(t *testing.T) {
		_, err := CompileParameterized([]byte("insert into foo (?, ?)"), []data.Lit{data.UIntLit(1)})
		assert.ErrorIs(t, err, ql.ErrParameterCountMismatch)
	})
	t.Run("too many parameters", func(t *testing.T) {
		_, err := CompileParameterized(
			[]byte("select * from user where id = ?"),
			[]data.Lit{data.UIntLit(1), data.UIntLit(2)},
		)
		assert.ErrorIs(t, err, ql.ErrParameterCountMismatch)
	})
	t.Run("embedded literal is rejected", func(t *testing.T) {
		_, err := CompileParameterized([]byte("select * from user where name = 'hello'"), nil)
		assert.ErrorIs(t, err, ql.ErrLiteralNotAllowed)
	})
}
