package sdss

import (
	"errors"
	"io"
	"os"

	pkgerrors "github.com/pkg/errors"
)

// Storage errors. Failures to open a file are wrapped with the path
// (errors.Wrap); read, write, sync and seek failures from the underlying
// file propagate unchanged. Nothing is retried here.
var (
	ErrCorruptedHeader = errors.New("sdss: corrupted header")
	ErrHeaderMismatch  = errors.New("sdss: header does not match expected scope/specifier/version")
	ErrShortRead       = errors.New("sdss: short read")
)

// RawFile is the capability set the SDSS driver needs from a file. The
// OS implementation maps to the obvious syscalls; MemFS provides an
// in-memory implementation for tests.
type RawFile interface {
	// ReadExact fills buf completely from the current position.
	ReadExact(buf []byte) error
	// WriteAll writes all of b at the current position.
	WriteAll(b []byte) error
	// SyncAll durably flushes everything written so far.
	SyncAll() error
	// SeekAhead positions the cursor at the given offset from the
	// start of the file.
	SeekAhead(off uint64) error
	// Len returns the current file length.
	Len() (uint64, error)
	// Close releases the handle.
	Close() error
}

// Opener opens or creates a file read-write, reporting whether this
// call created it.
type Opener func(path string) (f RawFile, created bool, err error)

// osFile adapts *os.File to RawFile.
type osFile struct {
	f *os.File
}

func (o *osFile) ReadExact(buf []byte) error {
	if _, err := io.ReadFull(o.f, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrShortRead
		}
		return err
	}
	return nil
}

func (o *osFile) WriteAll(b []byte) error {
	_, err := o.f.Write(b)
	return err
}

func (o *osFile) SyncAll() error { return o.f.Sync() }

func (o *osFile) SeekAhead(off uint64) error {
	_, err := o.f.Seek(int64(off), io.SeekStart)
	return err
}

func (o *osFile) Len() (uint64, error) {
	st, err := o.f.Stat()
	if err != nil {
		return 0, err
	}
	return uint64(st.Size()), nil
}

func (o *osFile) Close() error { return o.f.Close() }

// OSOpener opens or creates path on the local filesystem. Creation is
// detected with an O_EXCL create attempt rather than metadata
// heuristics (ctime == mtime is not reliable across platforms); an
// existing but empty file also counts as created, since it cannot hold
// a header yet.
func OSOpener(path string) (RawFile, bool, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err == nil {
		return &osFile{f: f}, true, nil
	}
	if !os.IsExist(err) {
		return nil, false, pkgerrors.Wrap(err, path)
	}
	f, err = os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, false, pkgerrors.Wrap(err, path)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, false, pkgerrors.Wrap(err, path)
	}
	return &osFile{f: f}, st.Size() == 0, nil
}
