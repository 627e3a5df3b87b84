package sdss

import (
	"github.com/sirupsen/logrus"
)

// File is the SDSS file driver: a raw file whose first HeaderSize bytes
// are a verified header, with an append-only body after it. The driver
// does not track a logical position; callers seek explicitly for random
// reads and append by writing past the last write.
//
// A File is single-owner: the caller serializes writes. Readers open
// independent handles.
type File struct {
	rf  RawFile
	log logrus.FieldLogger
}

// OpenResult reports what OpenOrCreatePermRW did. For an existing file,
// Header is the header as it was found on disk, before the modify
// counter bump was written back; for a created file it is the header
// that was written.
type OpenResult struct {
	File    *File
	Header  Header
	Created bool
}

// OpenOrCreatePermRW opens path read-write through the given opener,
// creating and stamping it if it does not exist yet.
//
// Created path: a header for the expected tuple is written with a zero
// modify counter and synced.
//
// Existing path: exactly one header is read and decoded
// (ErrCorruptedHeader on garbage), verified against the expected tuple
// (ErrHeaderMismatch), and written back synced with the modify counter
// bumped by one.
func OpenOrCreatePermRW(
	open Opener,
	path string,
	scope FileScope,
	specifier FileSpecifier,
	specifierVersion FileSpecifierVersion,
	hostSettingVersion uint32,
	mode HostRunMode,
	hostStartupCounter uint64,
	log logrus.FieldLogger,
) (OpenResult, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("file", path)
	rf, created, err := open(path)
	if err != nil {
		return OpenResult{}, err
	}
	f := &File{rf: rf, log: log}
	if created {
		header := NewHeader(scope, specifier, specifierVersion, hostSettingVersion, mode, hostStartupCounter)
		enc := header.Encode()
		if err := f.FsyncedWrite(enc[:]); err != nil {
			rf.Close()
			return OpenResult{}, err
		}
		log.WithField("specifier", specifier.String()).Info("created sdss file")
		return OpenResult{File: f, Header: header, Created: true}, nil
	}
	var raw [HeaderSize]byte
	if err := rf.ReadExact(raw[:]); err != nil {
		rf.Close()
		return OpenResult{}, err
	}
	header, ok := DecodeNoVerify(raw)
	if !ok {
		rf.Close()
		return OpenResult{}, ErrCorruptedHeader
	}
	if err := header.Verify(scope, specifier, specifierVersion); err != nil {
		rf.Close()
		return OpenResult{}, err
	}
	// the dynamic record changes on every open: rewrite the header with
	// the bumped modify counter before handing the file out
	updated := header
	updated.DR().BumpModifyCount()
	if err := rf.SeekAhead(0); err != nil {
		rf.Close()
		return OpenResult{}, err
	}
	enc := updated.Encode()
	if err := f.FsyncedWrite(enc[:]); err != nil {
		rf.Close()
		return OpenResult{}, err
	}
	log.WithFields(logrus.Fields{
		"specifier":      specifier.String(),
		"modify_counter": updated.Dynamic.ModifyCounter,
	}).Info("opened sdss file")
	return OpenResult{File: f, Header: header}, nil
}

// UnfsyncedWrite writes data at the current position without a
// durability barrier. Use for intra-batch writes fenced by a later
// FsyncAll.
func (f *File) UnfsyncedWrite(data []byte) error {
	return f.rf.WriteAll(data)
}

// FsyncAll establishes a durability barrier: everything written before
// it survives a crash once it returns.
func (f *File) FsyncAll() error {
	return f.rf.SyncAll()
}

// FsyncedWrite writes data and syncs it in one step.
func (f *File) FsyncedWrite(data []byte) error {
	if err := f.rf.WriteAll(data); err != nil {
		return err
	}
	return f.rf.SyncAll()
}

// ReadToBuffer fills buffer from the current position.
func (f *File) ReadToBuffer(buffer []byte) error {
	return f.rf.ReadExact(buffer)
}

// Length returns the current file length.
func (f *File) Length() (uint64, error) {
	return f.rf.Len()
}

// SeekAhead positions the cursor at the given offset from the start.
func (f *File) SeekAhead(by uint64) error {
	return f.rf.SeekAhead(by)
}

// Close releases the underlying handle.
func (f *File) Close() error {
	return f.rf.Close()
}
