package journal

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/blueql-db/blueql/data"
	"github.com/blueql-db/blueql/storage/sdss"
)

// BatchVersion is the body schema version of the data batch journal.
const BatchVersion sdss.FileSpecifierVersion = 1

// DeltaKind tags one row mutation in a data batch.
type DeltaKind uint8

const (
	DeltaInsert DeltaKind = iota
	DeltaUpdate
	DeltaDelete

	// deltaCommit closes a batch; its payload is the delta count of
	// the batch it commits.
	deltaCommit DeltaKind = 0xff
)

// Delta is one row mutation: the model it touches and the owned cells
// of the row (for deletes, the key cells).
type Delta struct {
	Kind    DeltaKind
	ModelID uint32
	Cells   []data.Datacell
}

// ErrBadCellEncoding is returned when a delta payload does not decode.
var ErrBadCellEncoding = errors.New("journal: bad cell encoding")

// BatchDriver is the single writer of a data batch journal. Deltas are
// appended without sync; CommitBatch writes the commit marker and
// establishes the durability barrier for the whole batch. A scan only
// replays deltas covered by a commit marker, so a crash mid-batch
// costs the open batch and nothing else.
type BatchDriver struct {
	f       *sdss.File
	pending uint32
	log     logrus.FieldLogger
}

// OpenBatch opens or creates the data batch journal at path.
func OpenBatch(open sdss.Opener, path string, hostSettingVersion uint32, mode sdss.HostRunMode, startupCounter uint64, log logrus.FieldLogger) (*BatchDriver, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	res, err := sdss.OpenOrCreatePermRW(
		open, path,
		sdss.ScopeDataBatch, sdss.SpecDataBatchJournal, BatchVersion,
		hostSettingVersion, mode, startupCounter, log,
	)
	if err != nil {
		return nil, err
	}
	length, err := res.File.Length()
	if err != nil {
		res.File.Close()
		return nil, err
	}
	if err := res.File.SeekAhead(length); err != nil {
		res.File.Close()
		return nil, err
	}
	return &BatchDriver{f: res.File, log: log.WithField("file", path)}, nil
}

// Append stages one delta in the open batch. Not durable until
// CommitBatch returns.
func (d *BatchDriver) Append(delta Delta) error {
	payload := encodeDelta(delta)
	rec := make([]byte, recordHeaderSize+len(payload))
	rec[0] = uint8(delta.Kind)
	binary.LittleEndian.PutUint32(rec[1:5], uint32(len(payload)))
	copy(rec[recordHeaderSize:], payload)
	if err := d.f.UnfsyncedWrite(rec); err != nil {
		return err
	}
	d.pending++
	return nil
}

// CommitBatch writes the commit marker for the staged deltas and syncs
// the file. On return the batch is durable.
func (d *BatchDriver) CommitBatch() error {
	var rec [recordHeaderSize + 4]byte
	rec[0] = uint8(deltaCommit)
	binary.LittleEndian.PutUint32(rec[1:5], 4)
	binary.LittleEndian.PutUint32(rec[recordHeaderSize:], d.pending)
	if err := d.f.UnfsyncedWrite(rec[:]); err != nil {
		return err
	}
	if err := d.f.FsyncAll(); err != nil {
		return err
	}
	d.log.WithField("deltas", d.pending).Debug("committed data batch")
	d.pending = 0
	return nil
}

// Close releases the journal handle. Staged, uncommitted deltas are
// abandoned by design.
func (d *BatchDriver) Close() error { return d.f.Close() }

// ScanCommitted replays every delta covered by a commit marker, in
// submission order. Deltas past the last marker (an uncommitted batch)
// are dropped silently; a torn record surfaces as TornRecordError.
func (d *BatchDriver) ScanCommitted(fn func(Delta) error) error {
	var open []Delta
	err := scanRecords(d.f, func(kind uint8, payload []byte) error {
		if DeltaKind(kind) == deltaCommit {
			for _, delta := range open {
				if err := fn(delta); err != nil {
					return err
				}
			}
			open = open[:0]
			return nil
		}
		delta, err := decodeDelta(DeltaKind(kind), payload)
		if err != nil {
			return err
		}
		open = append(open, delta)
		return nil
	})
	return err
}

// Delta payload: u32 model id, then cells, each as a kind byte plus a
// fixed or length-prefixed value.
func encodeDelta(d Delta) []byte {
	out := binary.LittleEndian.AppendUint32(nil, d.ModelID)
	for _, c := range d.Cells {
		out = appendCell(out, c)
	}
	return out
}

func decodeDelta(kind DeltaKind, payload []byte) (Delta, error) {
	if len(payload) < 4 {
		return Delta{}, ErrBadCellEncoding
	}
	d := Delta{Kind: kind, ModelID: binary.LittleEndian.Uint32(payload)}
	rest := payload[4:]
	for len(rest) > 0 {
		var (
			c   data.Datacell
			err error
		)
		c, rest, err = readCell(rest)
		if err != nil {
			return Delta{}, err
		}
		d.Cells = append(d.Cells, c)
	}
	return d, nil
}

func appendCell(out []byte, c data.Datacell) []byte {
	out = append(out, uint8(c.Kind()))
	switch c.Kind() {
	case data.CellNull:
	case data.CellBool:
		if c.Bool() {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
	case data.CellUInt:
		out = binary.LittleEndian.AppendUint64(out, c.UInt())
	case data.CellSInt:
		out = binary.LittleEndian.AppendUint64(out, uint64(c.SInt()))
	case data.CellFloat:
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(c.Float()))
	case data.CellStr:
		out = binary.LittleEndian.AppendUint32(out, uint32(len(c.Str())))
		out = append(out, c.Str()...)
	case data.CellBin:
		out = binary.LittleEndian.AppendUint32(out, uint32(len(c.Bin())))
		out = append(out, c.Bin()...)
	}
	return out
}

func readCell(b []byte) (data.Datacell, []byte, error) {
	if len(b) < 1 {
		return data.Datacell{}, nil, ErrBadCellEncoding
	}
	kind := data.CellKind(b[0])
	b = b[1:]
	switch kind {
	case data.CellNull:
		return data.NullCell(), b, nil
	case data.CellBool:
		if len(b) < 1 {
			return data.Datacell{}, nil, ErrBadCellEncoding
		}
		return data.BoolCell(b[0] != 0), b[1:], nil
	case data.CellUInt, data.CellSInt, data.CellFloat:
		if len(b) < 8 {
			return data.Datacell{}, nil, ErrBadCellEncoding
		}
		v := binary.LittleEndian.Uint64(b)
		b = b[8:]
		switch kind {
		case data.CellUInt:
			return data.UIntCell(v), b, nil
		case data.CellSInt:
			return data.SIntCell(int64(v)), b, nil
		default:
			return data.FloatCell(math.Float64frombits(v)), b, nil
		}
	case data.CellStr, data.CellBin:
		if len(b) < 4 {
			return data.Datacell{}, nil, ErrBadCellEncoding
		}
		n := binary.LittleEndian.Uint32(b)
		b = b[4:]
		if uint32(len(b)) < n {
			return data.Datacell{}, nil, ErrBadCellEncoding
		}
		if kind == data.CellStr {
			return data.StrCell(string(b[:n])), b[n:], nil
		}
		return data.BinCell(b[:n]), b[n:], nil
	default:
		return data.Datacell{}, nil, ErrBadCellEncoding
	}
}
