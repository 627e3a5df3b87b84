package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueql-db/blueql"
	"github.com/blueql-db/blueql/data"
	"github.com/blueql-db/blueql/storage/sdss"
)

func openGNS(t *testing.T, fs *sdss.MemFS) *GNSDriver {
	t.Helper()
	d, err := OpenGNS(fs.Opener(), "gns.db", 3, sdss.RunModeProd, 42, nil)
	require.NoError(t, err)
	return d
}

func TestGNS_AppendAndScan(t *testing.T) {
	fs := sdss.NewMemFS()
	d := openGNS(t, fs)
	events := []Event{
		{Kind: EventCreateSpace, Payload: []byte("create space myspace")},
		{Kind: EventCreateModel, Payload: []byte("create model myspace.user(id: string)")},
		{Kind: EventDropModel, Payload: []byte("drop model myspace.user force")},
	}
	for _, ev := range events {
		require.NoError(t, d.Append(ev))
	}
	require.NoError(t, d.Close())

	re := openGNS(t, fs)
	defer re.Close()
	var got []Event
	require.NoError(t, re.Scan(func(ev Event) error {
		got = append(got, ev)
		return nil
	}))
	assert.Equal(t, events, got)
}

func TestGNS_EventForStatement(t *testing.T) {
	cases := []struct {
		query string
		kind  EventKind
	}{
		{"create space s", EventCreateSpace},
		{"create model m(id: string)", EventCreateModel},
		{"alter space s with { a: 1 }", EventAlterSpace},
		{"alter model m remove id", EventAlterModel},
		{"drop space s", EventDropSpace},
		{"drop model m force", EventDropModel},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			stmt, err := blueql.Compile([]byte(tc.query))
			require.NoError(t, err)
			ev, ok := EventForStatement(stmt, []byte(tc.query))
			require.True(t, ok)
			assert.Equal(t, tc.kind, ev.Kind)
			assert.Equal(t, []byte(tc.query), ev.Payload)
		})
	}
	t.Run("dml is not journaled here", func(t *testing.T) {
		stmt, err := blueql.Compile([]byte("select * from user"))
		require.NoError(t, err)
		_, ok := EventForStatement(stmt, nil)
		assert.False(t, ok)
	})
}

func TestGNS_TornTrailingRecord(t *testing.T) {
	fs := sdss.NewMemFS()
	d := openGNS(t, fs)
	require.NoError(t, d.Append(Event{Kind: EventCreateSpace, Payload: []byte("create space s")}))
	require.NoError(t, d.Close())

	// make the record claim a payload longer than the file: a torn append
	fs.Corrupt("gns.db", sdss.HeaderSize+1, []byte{0xff, 0xff, 0x00, 0x00})

	re := openGNS(t, fs)
	defer re.Close()
	err := re.Scan(func(Event) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTornRecord)
	var torn *TornRecordError
	require.ErrorAs(t, err, &torn)
	assert.Equal(t, uint64(sdss.HeaderSize), torn.SafeOffset)
}

func TestBatch_CommitAndReplay(t *testing.T) {
	fs := sdss.NewMemFS()
	d, err := OpenBatch(fs.Opener(), "batch.db", 3, sdss.RunModeDev, 1, nil)
	require.NoError(t, err)
	deltas := []Delta{
		{Kind: DeltaInsert, ModelID: 7, Cells: []data.Datacell{data.StrCell("sayan"), data.UIntCell(20)}},
		{Kind: DeltaUpdate, ModelID: 7, Cells: []data.Datacell{data.StrCell("sayan"), data.UIntCell(21)}},
		{Kind: DeltaDelete, ModelID: 7, Cells: []data.Datacell{data.StrCell("sayan")}},
	}
	for _, delta := range deltas {
		require.NoError(t, d.Append(delta))
	}
	require.NoError(t, d.CommitBatch())
	// an uncommitted straggler must not replay
	require.NoError(t, d.Append(Delta{Kind: DeltaInsert, ModelID: 9, Cells: []data.Datacell{data.NullCell()}}))
	require.NoError(t, d.Close())

	re, err := OpenBatch(fs.Opener(), "batch.db", 3, sdss.RunModeDev, 2, nil)
	require.NoError(t, err)
	defer re.Close()
	var got []Delta
	require.NoError(t, re.ScanCommitted(func(delta Delta) error {
		got = append(got, delta)
		return nil
	}))
	require.Len(t, got, len(deltas))
	for i := range deltas {
		assert.Equal(t, deltas[i].Kind, got[i].Kind)
		assert.Equal(t, deltas[i].ModelID, got[i].ModelID)
		require.Len(t, got[i].Cells, len(deltas[i].Cells))
		for j := range deltas[i].Cells {
			assert.True(t, got[i].Cells[j].Eq(deltas[i].Cells[j]))
		}
	}
}

func TestBatch_CellCodecRoundTrip(t *testing.T) {
	in := Delta{Kind: DeltaInsert, ModelID: 3, Cells: []data.Datacell{
		data.NullCell(),
		data.BoolCell(true),
		data.UIntCell(1 << 40),
		data.SIntCell(-9),
		data.FloatCell(2.5),
		data.StrCell("text"),
		data.BinCell([]byte{0, 1, 2}),
	}}
	out, err := decodeDelta(in.Kind, encodeDelta(in))
	require.NoError(t, err)
	require.Len(t, out.Cells, len(in.Cells))
	for i := range in.Cells {
		assert.True(t, out.Cells[i].Eq(in.Cells[i]))
	}
}
