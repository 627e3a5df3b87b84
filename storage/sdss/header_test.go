package sdss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := NewHeader(ScopeJournal, SpecGNSTxnLog, 1, 3, RunModeProd, 42)
	enc := h.Encode()
	dec, ok := DecodeNoVerify(enc)
	require.True(t, ok)
	assert.Equal(t, h, dec)
	assert.NoError(t, dec.Verify(ScopeJournal, SpecGNSTxnLog, 1))
}

func TestHeaderDecode_BadMagic(t *testing.T) {
	h := NewHeader(ScopeJournal, SpecGNSTxnLog, 1, 1, RunModeDev, 0)
	enc := h.Encode()
	enc[0] = 'X'
	_, ok := DecodeNoVerify(enc)
	assert.False(t, ok)
}

func TestHeaderDecode_BadFormatVersion(t *testing.T) {
	h := NewHeader(ScopeJournal, SpecGNSTxnLog, 1, 1, RunModeDev, 0)
	enc := h.Encode()
	enc[8] = 0xff
	enc[9] = 0xff
	_, ok := DecodeNoVerify(enc)
	assert.False(t, ok)
}

func TestHeaderVerify_Mismatch(t *testing.T) {
	h := NewHeader(ScopeJournal, SpecGNSTxnLog, 1, 1, RunModeDev, 0)
	assert.ErrorIs(t, h.Verify(ScopeDataBatch, SpecGNSTxnLog, 1), ErrHeaderMismatch)
	assert.ErrorIs(t, h.Verify(ScopeJournal, SpecDataBatchJournal, 1), ErrHeaderMismatch)
	assert.ErrorIs(t, h.Verify(ScopeJournal, SpecGNSTxnLog, 2), ErrHeaderMismatch)
}

func TestBumpModifyCount(t *testing.T) {
	var d DynamicRecord
	d.BumpModifyCount()
	d.BumpModifyCount()
	assert.Equal(t, uint64(2), d.ModifyCounter)

	d.ModifyCounter = ^uint64(0)
	assert.Panics(t, func() { d.BumpModifyCount() })
}

func TestHeaderSizeIsStable(t *testing.T) {
	// the body offset is part of the on-disk contract
	assert.Equal(t, 128, HeaderSize)
	h := NewHeader(ScopeDataBatch, SpecDataBatchJournal, 7, 9, RunModeDev, 1)
	assert.Len(t, h.Encode(), HeaderSize)
}
