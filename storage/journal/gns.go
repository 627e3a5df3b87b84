// Package journal implements the two concrete SDSS v1 files: the GNS
// transaction journal, which records DDL changes, and the data batch
// journal, which records batched row mutations. Both append
// length-prefixed records after the SDSS header. The GNS journal does not
// interpret the payloads it replays; the batch journal decodes its
// payloads into deltas.
package journal

import (
	"encoding/binary"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/blueql-db/blueql/ql"
	"github.com/blueql-db/blueql/storage/sdss"
)

// ErrTornRecord is reported by Scan when the file ends mid-record: a
// crash interrupted an append. The scan result up to that point is
// intact and the safe truncation offset is carried alongside.
var ErrTornRecord = errors.New("journal: torn trailing record")

// TornRecordError wraps ErrTornRecord with the offset at which the
// journal is still whole.
type TornRecordError struct {
	SafeOffset uint64
}

func (e *TornRecordError) Error() string { return ErrTornRecord.Error() }

func (e *TornRecordError) Unwrap() error { return ErrTornRecord }

// EventKind tags a GNS journal record.
type EventKind uint8

const (
	EventCreateSpace EventKind = iota
	EventCreateModel
	EventAlterSpace
	EventAlterModel
	EventDropSpace
	EventDropModel
)

// Event is one DDL change: its kind and the raw query text that caused
// it. Replay re-compiles the payload; the journal itself stays
// schema-agnostic.
type Event struct {
	Kind    EventKind
	Payload []byte
}

// EventForStatement maps a compiled DDL statement to its journal event,
// with raw as the payload. DML and read-only statements return false:
// they never reach the GNS journal.
func EventForStatement(stmt ql.Statement, raw []byte) (Event, bool) {
	var kind EventKind
	switch stmt.(type) {
	case ql.CreateSpace:
		kind = EventCreateSpace
	case ql.CreateModel:
		kind = EventCreateModel
	case ql.AlterSpace:
		kind = EventAlterSpace
	case ql.AlterModel:
		kind = EventAlterModel
	case ql.DropSpace:
		kind = EventDropSpace
	case ql.DropModel:
		kind = EventDropModel
	default:
		return Event{}, false
	}
	return Event{Kind: kind, Payload: raw}, true
}

// GNSVersion is the body schema version this build writes and accepts.
const GNSVersion sdss.FileSpecifierVersion = 1

// recordHeaderSize is the per-record framing overhead: u8 kind + u32
// payload length.
const recordHeaderSize = 5

// GNSDriver is the single writer of a GNS transaction journal. Every
// append is fsynced before it returns: a DDL change reported as
// journaled survives a crash.
type GNSDriver struct {
	f   *sdss.File
	end uint64
	log logrus.FieldLogger
}

// OpenGNS opens or creates the GNS journal at path.
func OpenGNS(open sdss.Opener, path string, hostSettingVersion uint32, mode sdss.HostRunMode, startupCounter uint64, log logrus.FieldLogger) (*GNSDriver, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	res, err := sdss.OpenOrCreatePermRW(
		open, path,
		sdss.ScopeJournal, sdss.SpecGNSTxnLog, GNSVersion,
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
	return &GNSDriver{f: res.File, end: length, log: log.WithField("file", path)}, nil
}

// Append journals one event, durably. The record is framed as
// [u8 kind][u32 payload len][payload] and fsynced before return.
func (d *GNSDriver) Append(ev Event) error {
	rec := make([]byte, recordHeaderSize+len(ev.Payload))
	rec[0] = uint8(ev.Kind)
	binary.LittleEndian.PutUint32(rec[1:5], uint32(len(ev.Payload)))
	copy(rec[recordHeaderSize:], ev.Payload)
	if err := d.f.FsyncedWrite(rec); err != nil {
		return err
	}
	d.end += uint64(len(rec))
	return nil
}

// Close releases the journal handle.
func (d *GNSDriver) Close() error { return d.f.Close() }

// Scan replays every whole record from just past the header, in append
// order. A torn trailing record stops the scan with a TornRecordError
// carrying the safe truncation offset; everything already handed to fn
// is valid.
func (d *GNSDriver) Scan(fn func(Event) error) error {
	return scanRecords(d.f, func(kind uint8, payload []byte) error {
		return fn(Event{Kind: EventKind(kind), Payload: payload})
	})
}

// scanRecords walks the record framing shared by both journals.
func scanRecords(f *sdss.File, fn func(kind uint8, payload []byte) error) error {
	length, err := f.Length()
	if err != nil {
		return err
	}
	off := uint64(sdss.HeaderSize)
	if err := f.SeekAhead(off); err != nil {
		return err
	}
	for off < length {
		if length-off < recordHeaderSize {
			return &TornRecordError{SafeOffset: off}
		}
		var hdr [recordHeaderSize]byte
		if err := f.ReadToBuffer(hdr[:]); err != nil {
			return err
		}
		n := uint64(binary.LittleEndian.Uint32(hdr[1:5]))
		if length-off-recordHeaderSize < n {
			return &TornRecordError{SafeOffset: off}
		}
		payload := make([]byte, n)
		if n > 0 {
			if err := f.ReadToBuffer(payload); err != nil {
				return err
			}
		}
		if err := fn(hdr[0], payload); err != nil {
			return err
		}
		off += recordHeaderSize + n
	}
	return nil
}
