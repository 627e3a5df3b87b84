package ql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueql-db/blueql/data"
)

func TestInsert(t *testing.T) {
	t.Run("tuple form", func(t *testing.T) {
		stmt, err := compileInsecure(t, "insert into myspace.user ('sayan', 20, true)")
		require.NoError(t, err)
		ins, ok := stmt.(InsertStatement)
		require.True(t, ok)
		assert.Equal(t, FullEntity([]byte("myspace"), []byte("user")), ins.Entity)
		require.Len(t, ins.Tuple, 3)
		assert.True(t, ins.Tuple[0].Cell.Eq(data.StrCell("sayan")))
		assert.True(t, ins.Tuple[1].Cell.Eq(data.UIntCell(20)))
		assert.True(t, ins.Tuple[2].Cell.Eq(data.BoolCell(true)))
		assert.Nil(t, ins.Map)
	})
	t.Run("map form", func(t *testing.T) {
		stmt, err := compileInsecure(t, "insert into user { name: 'sayan', age: 20 }")
		require.NoError(t, err)
		ins := stmt.(InsertStatement)
		require.Len(t, ins.Map, 2)
		assert.Equal(t, []byte("name"), ins.Map[0].Field)
		assert.True(t, ins.Map[1].Value.Cell.Eq(data.UIntCell(20)))
	})
	t.Run("producer call", func(t *testing.T) {
		stmt, err := compileInsecure(t, "insert into user (uuidv4(), 'sayan')")
		require.NoError(t, err)
		ins := stmt.(InsertStatement)
		require.Len(t, ins.Tuple, 2)
		assert.True(t, ins.Tuple[0].IsFn())
		assert.Equal(t, []byte("uuidv4"), ins.Tuple[0].Fn)
		assert.False(t, ins.Tuple[1].IsFn())
	})
	t.Run("missing into", func(t *testing.T) {
		_, err := compileInsecure(t, "insert user (1)")
		assert.ErrorIs(t, err, ErrUnexpectedToken)
	})
	t.Run("tuple commas are mandatory", func(t *testing.T) {
		_, err := compileInsecure(t, "insert into user (1 2)")
		assert.ErrorIs(t, err, ErrUnexpectedToken)
	})
	t.Run("unterminated tuple", func(t *testing.T) {
		_, err := compileInsecure(t, "insert into user (1,")
		assert.ErrorIs(t, err, ErrUnexpectedEndOfStatement)
	})
}

func TestSelect(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		stmt, err := compileInsecure(t, "select * from myspace.user")
		require.NoError(t, err)
		sel, ok := stmt.(SelectStatement)
		require.True(t, ok)
		assert.True(t, sel.Wildcard)
		assert.Empty(t, sel.Fields)
		assert.Empty(t, sel.Where.Exprs)
	})
	t.Run("field list", func(t *testing.T) {
		stmt, err := compileInsecure(t, "select name, age from user")
		require.NoError(t, err)
		sel := stmt.(SelectStatement)
		assert.False(t, sel.Wildcard)
		assert.Equal(t, [][]byte{[]byte("name"), []byte("age")}, sel.Fields)
	})
	t.Run("where clause", func(t *testing.T) {
		stmt, err := compileInsecure(t, "select * from user where name = 'sayan' and age >= 18")
		require.NoError(t, err)
		sel := stmt.(SelectStatement)
		require.Len(t, sel.Where.Exprs, 2)
		assert.Equal(t, RelEq, sel.Where.Exprs[0].Op)
		assert.True(t, sel.Where.Exprs[0].Value.Cell.Eq(data.StrCell("sayan")))
		assert.Equal(t, RelGe, sel.Where.Exprs[1].Op)
	})
	t.Run("empty where clause", func(t *testing.T) {
		_, err := compileInsecure(t, "select * from user where")
		assert.ErrorIs(t, err, ErrUnexpectedEndOfStatement)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("assignment operators", func(t *testing.T) {
		stmt, err := compileInsecure(t, "update user set visits += 1, name = 'sayan' where id = 10")
		require.NoError(t, err)
		upd, ok := stmt.(UpdateStatement)
		require.True(t, ok)
		require.Len(t, upd.Assignments, 2)
		assert.Equal(t, AssignAdd, upd.Assignments[0].Op)
		assert.True(t, upd.Assignments[0].Value.Cell.Eq(data.UIntCell(1)))
		assert.Equal(t, AssignSet, upd.Assignments[1].Op)
		require.Len(t, upd.Where.Exprs, 1)
	})
	t.Run("subtract assign", func(t *testing.T) {
		stmt, err := compileInsecure(t, "update user set credits -= 5 where id = 1")
		require.NoError(t, err)
		upd := stmt.(UpdateStatement)
		assert.Equal(t, AssignSub, upd.Assignments[0].Op)
	})
	t.Run("where is mandatory", func(t *testing.T) {
		_, err := compileInsecure(t, "update user set visits += 1")
		assert.ErrorIs(t, err, ErrUnexpectedEndOfStatement)
	})
}

func TestDelete(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		stmt, err := compileInsecure(t, "delete from myspace.user where id = 10")
		require.NoError(t, err)
		del, ok := stmt.(DeleteStatement)
		require.True(t, ok)
		assert.Equal(t, FullEntity([]byte("myspace"), []byte("user")), del.Entity)
		require.Len(t, del.Where.Exprs, 1)
		assert.Equal(t, RelEq, del.Where.Exprs[0].Op)
	})
	t.Run("where is mandatory", func(t *testing.T) {
		_, err := compileInsecure(t, "delete from user")
		assert.ErrorIs(t, err, ErrUnexpectedEndOfStatement)
	})
	t.Run("from is mandatory", func(t *testing.T) {
		_, err := compileInsecure(t, "delete user where id = 1")
		assert.ErrorIs(t, err, ErrUnexpectedToken)
	})
}

func TestSubstitutedDML(t *testing.T) {
	t.Run("placeholders consume the parameter vector", func(t *testing.T) {
		tok, err := LexSafe([]byte("insert into foo (?, ?)"))
		require.NoError(t, err)
		params := []data.Lit{data.UIntLit(1), data.StrLit([]byte("hi"))}
		d := NewSubstitutedData(params)
		stmt, err := Compile(tok, d)
		require.NoError(t, err)
		ins := stmt.(InsertStatement)
		require.Len(t, ins.Tuple, 2)
		assert.True(t, ins.Tuple[0].Cell.Eq(data.UIntCell(1)))
		assert.True(t, ins.Tuple[1].Cell.Eq(data.StrCell("hi")))
		assert.False(t, d.Nonzero())
	})
	t.Run("under-supplied parameters poison the parse", func(t *testing.T) {
		tok, err := LexSafe([]byte("insert into foo (?, ?)"))
		require.NoError(t, err)
		_, err = Compile(tok, NewSubstitutedData([]data.Lit{data.UIntLit(1)}))
		assert.Error(t, err)
	})
	t.Run("safe where clause", func(t *testing.T) {
		tok, err := LexSafe([]byte("select * from user where id = ?"))
		require.NoError(t, err)
		stmt, err := Compile(tok, NewSubstitutedData([]data.Lit{data.UIntLit(7)}))
		require.NoError(t, err)
		sel := stmt.(SelectStatement)
		require.Len(t, sel.Where.Exprs, 1)
		assert.True(t, sel.Where.Exprs[0].Value.Cell.Eq(data.UIntCell(7)))
	})
}
