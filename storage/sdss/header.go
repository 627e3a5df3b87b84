// Package sdss implements the v1 Skytable Disk Storage Specification:
// a fixed-size self-describing file header, a raw file capability
// interface with OS and in-memory implementations, and the file driver
// with open-or-create semantics used by the journals.
package sdss

import (
	"encoding/binary"
	"unsafe"
)

// HeaderSize is the encoded size of the SDSS header. Every SDSS file
// starts with exactly this many bytes; the body begins at this offset.
const HeaderSize = 128

// headerMagic identifies an SDSS file. Never changes across header
// format versions.
var headerMagic = [8]byte{'S', 'D', 'S', 'S', 'H', 'D', 'R', '1'}

// headerFormatVersion is the version of the header layout itself, not
// of the file body (that is FileSpecifierVersion's job).
const headerFormatVersion uint16 = 1

// FileScope is the coarse class of an SDSS file.
type FileScope uint16

const (
	ScopeJournal FileScope = iota
	ScopeDataBatch
)

func (s FileScope) String() string {
	switch s {
	case ScopeJournal:
		return "journal"
	case ScopeDataBatch:
		return "data batch"
	default:
		return "unknown scope"
	}
}

// FileSpecifier is the purpose tag of an SDSS file within its scope.
type FileSpecifier uint16

const (
	SpecGNSTxnLog FileSpecifier = iota
	SpecDataBatchJournal
	SpecTestTransactionLog
)

func (s FileSpecifier) String() string {
	switch s {
	case SpecGNSTxnLog:
		return "gns transaction log"
	case SpecDataBatchJournal:
		return "data batch journal"
	case SpecTestTransactionLog:
		return "test transaction log"
	default:
		return "unknown specifier"
	}
}

// FileSpecifierVersion versions the body schema of a specifier. The
// driver refuses to open a version it was not compiled for.
type FileSpecifierVersion uint32

// HostRunMode records whether the writing host ran in development or
// production mode.
type HostRunMode uint8

const (
	RunModeDev HostRunMode = iota
	RunModeProd
)

func (m HostRunMode) String() string {
	switch m {
	case RunModeDev:
		return "dev"
	case RunModeProd:
		return "prod"
	default:
		return "unknown run mode"
	}
}

const (
	endianLittle uint8 = 0
	endianBig    uint8 = 1
)

// StaticRecord describes what the file is: identity and schema. It is
// written once at create time and must match the opener's expectation
// forever after.
type StaticRecord struct {
	FormatVersion    uint16
	Endian           uint8
	PtrWidth         uint8
	Scope            FileScope
	Specifier        FileSpecifier
	SpecifierVersion FileSpecifierVersion
}

// DynamicRecord describes who touched the file last: host settings,
// run mode, startup counter, and the per-open modify counter. It is
// rewritten on every open.
type DynamicRecord struct {
	HostSettingVersion uint32
	HostRunMode        HostRunMode
	HostStartupCounter uint64
	ModifyCounter      uint64
}

// BumpModifyCount adds one to the modify counter. Saturation is
// forbidden by the format: at the u64 ceiling the file has been opened
// more times than is physically plausible and the process dies loudly
// rather than silently reusing a counter value.
func (d *DynamicRecord) BumpModifyCount() {
	if d.ModifyCounter == ^uint64(0) {
		panic("sdss: modify counter overflow")
	}
	d.ModifyCounter++
}

// Header is the decoded SDSS preamble. It is a small value type; pass
// it by value and re-encode with Encode.
type Header struct {
	Static  StaticRecord
	Dynamic DynamicRecord
}

// DR returns the mutable dynamic record.
func (h *Header) DR() *DynamicRecord { return &h.Dynamic }

// NewHeader builds a header for a file being created now, with a zero
// modify counter.
func NewHeader(
	scope FileScope,
	specifier FileSpecifier,
	specifierVersion FileSpecifierVersion,
	hostSettingVersion uint32,
	mode HostRunMode,
	hostStartupCounter uint64,
) Header {
	return Header{
		Static: StaticRecord{
			FormatVersion:    headerFormatVersion,
			Endian:           hostEndian(),
			PtrWidth:         uint8(unsafe.Sizeof(uintptr(0))),
			Scope:            scope,
			Specifier:        specifier,
			SpecifierVersion: specifierVersion,
		},
		Dynamic: DynamicRecord{
			HostSettingVersion: hostSettingVersion,
			HostRunMode:        mode,
			HostStartupCounter: hostStartupCounter,
		},
	}
}

func hostEndian() uint8 {
	x := uint16(1)
	if *(*byte)(unsafe.Pointer(&x)) == 1 {
		return endianLittle
	}
	return endianBig
}

// Encoded layout (all integers little-endian):
//
//	0   magic                 8
//	8   format version        2
//	10  endian flag           1
//	11  ptr width flag        1
//	12  reserved              4
//	16  file scope            2
//	18  file specifier        2
//	20  specifier version     4
//	24  reserved              8
//	32  host setting version  4
//	36  host run mode         1
//	37  reserved              3
//	40  host startup counter  8
//	48  modify counter        8
//	56  reserved              72 (pads to HeaderSize)
//
// Reserved ranges are zero on encode and ignored on decode; they are
// never repurposed, future fields claim them explicitly.
func (h Header) Encode() [HeaderSize]byte {
	var b [HeaderSize]byte
	copy(b[0:8], headerMagic[:])
	binary.LittleEndian.PutUint16(b[8:10], h.Static.FormatVersion)
	b[10] = h.Static.Endian
	b[11] = h.Static.PtrWidth
	binary.LittleEndian.PutUint16(b[16:18], uint16(h.Static.Scope))
	binary.LittleEndian.PutUint16(b[18:20], uint16(h.Static.Specifier))
	binary.LittleEndian.PutUint32(b[20:24], uint32(h.Static.SpecifierVersion))
	binary.LittleEndian.PutUint32(b[32:36], h.Dynamic.HostSettingVersion)
	b[36] = uint8(h.Dynamic.HostRunMode)
	binary.LittleEndian.PutUint64(b[40:48], h.Dynamic.HostStartupCounter)
	binary.LittleEndian.PutUint64(b[48:56], h.Dynamic.ModifyCounter)
	return b
}

// DecodeNoVerify decodes a header, checking only that the magic and the
// header format version are ones this build understands. Scope and
// specifier checks happen separately in Verify so the caller can
// distinguish corruption from a mismatched file.
func DecodeNoVerify(b [HeaderSize]byte) (Header, bool) {
	if [8]byte(b[0:8]) != headerMagic {
		return Header{}, false
	}
	if binary.LittleEndian.Uint16(b[8:10]) != headerFormatVersion {
		return Header{}, false
	}
	return Header{
		Static: StaticRecord{
			FormatVersion:    binary.LittleEndian.Uint16(b[8:10]),
			Endian:           b[10],
			PtrWidth:         b[11],
			Scope:            FileScope(binary.LittleEndian.Uint16(b[16:18])),
			Specifier:        FileSpecifier(binary.LittleEndian.Uint16(b[18:20])),
			SpecifierVersion: FileSpecifierVersion(binary.LittleEndian.Uint32(b[20:24])),
		},
		Dynamic: DynamicRecord{
			HostSettingVersion: binary.LittleEndian.Uint32(b[32:36]),
			HostRunMode:        HostRunMode(b[36]),
			HostStartupCounter: binary.LittleEndian.Uint64(b[40:48]),
			ModifyCounter:      binary.LittleEndian.Uint64(b[48:56]),
		},
	}, true
}

// Verify checks the header against the scope/specifier/version tuple
// the caller expects for this file.
func (h Header) Verify(scope FileScope, specifier FileSpecifier, version FileSpecifierVersion) error {
	if h.Static.Scope != scope || h.Static.Specifier != specifier || h.Static.SpecifierVersion != version {
		return ErrHeaderMismatch
	}
	return nil
}
