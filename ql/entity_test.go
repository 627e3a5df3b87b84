package ql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptProcessEntity(t *testing.T) {
	t.Run("full entity", func(t *testing.T) {
		tok, err := LexInsecure([]byte("space.model"))
		require.NoError(t, err)
		s := NewInplaceState(tok)
		e, err := AttemptProcessEntityResult(s)
		require.NoError(t, err)
		assert.True(t, e.IsFull())
		assert.Equal(t, []byte("space"), e.Space())
		assert.Equal(t, []byte("model"), e.Model())
		assert.Equal(t, 3, s.Consumed())
	})
	t.Run("single entity", func(t *testing.T) {
		tok, err := LexInsecure([]byte("mymodel"))
		require.NoError(t, err)
		s := NewInplaceState(tok)
		e, err := AttemptProcessEntityResult(s)
		require.NoError(t, err)
		assert.False(t, e.IsFull())
		assert.Equal(t, []byte("mymodel"), e.Model())
		assert.Nil(t, e.Space())
	})
	t.Run("not an entity", func(t *testing.T) {
		s := NewInplaceState([]Token{Sym(SymDot)})
		_, err := AttemptProcessEntityResult(s)
		assert.ErrorIs(t, err, ErrExpectedEntity)
		assert.False(t, s.Okay())
	})
	t.Run("end of stream", func(t *testing.T) {
		s := NewInplaceState([]Token{Kw(KwUse)})
		s.CursorAhead()
		_, err := AttemptProcessEntityResult(s)
		assert.ErrorIs(t, err, ErrExpectedEntity)
	})
	t.Run("poison leaves output untouched", func(t *testing.T) {
		s := NewInplaceState([]Token{Sym(SymComma)})
		sentinel := FullEntity([]byte("keep"), []byte("me"))
		out := sentinel
		AttemptProcessEntity(s, &out)
		assert.False(t, s.Okay())
		assert.Equal(t, sentinel, out)
	})
}
