package patchfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
)

// Entry names looked up inside patch archives.
const (
	DexInJar        = "classes.dex"
	ResourceTable   = "resources.arsc"
	DefaultReadSize = 1 << 20
)

// entryReader streams one archive entry and owns the archive handle.
// The archive is released on EOF or Close, whichever comes first.
type entryReader struct {
	rc      io.ReadCloser
	archive *zip.ReadCloser
	closed  bool
}

func (e *entryReader) Read(p []byte) (int, error) {
	if e.closed {
		return 0, io.EOF
	}
	n, err := e.rc.Read(p)
	if err == io.EOF {
		e.Close()
	}
	return n, err
}

func (e *entryReader) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	CloseQuietly(e.rc)
	return e.archive.Close()
}

// OpenEntry opens the archive at archivePath and returns a stream over the decompressed
// bytes of the entry whose name is exactly entryName. The caller must Close the stream;
// the archive itself is closed with it.
func OpenEntry(archivePath, entryName string) (io.ReadCloser, error) {
	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		diag().Info("cannot open archive", "path", archivePath, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArchive, archivePath, err)
	}

	var target *zip.File
	for _, f := range archive.File {
		if f.Name == entryName {
			target = f
			break
		}
	}
	if target == nil {
		CloseQuietly(archive)
		diag().Info("archive entry not found", "path", archivePath, "entry", entryName)
		return nil, fmt.Errorf("%w: %s in %s", ErrEntryNotFound, entryName, archivePath)
	}

	rc, err := target.Open()
	if err != nil {
		CloseQuietly(archive)
		return nil, fmt.Errorf("%w: %s in %s: %w", ErrInvalidArchive, entryName, archivePath, err)
	}
	return &entryReader{rc: rc, archive: archive}, nil
}

// DigestEntry returns the fingerprint of a single archive entry.
func DigestEntry(archivePath, entryName string) (string, error) {
	rc, err := OpenEntry(archivePath, entryName)
	if err != nil {
		return "", err
	}
	return DigestStream(rc)
}

// ReadEntry reads an entry fully. Entries larger than limit bytes are rejected with
// ErrEntryTooLarge; a limit below 1 means DefaultReadSize.
func ReadEntry(archivePath, entryName string, limit int64) ([]byte, error) {
	if limit < 1 {
		limit = DefaultReadSize
	}
	rc, err := OpenEntry(archivePath, entryName)
	if err != nil {
		return nil, err
	}
	defer CloseQuietly(rc)

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	if n > limit {
		return nil, fmt.Errorf("%w: %s in %s", ErrEntryTooLarge, entryName, archivePath)
	}
	return buf.Bytes(), nil
}

// EntryInfo describes one file in an archive's central directory.
type EntryInfo struct {
	Name             string
	CompressedSize   uint64
	UncompressedSize uint64
	CRC32            uint32
}

// EntryNames lists the entries of the archive in central-directory order.
func EntryNames(archivePath string) ([]EntryInfo, error) {
	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArchive, archivePath, err)
	}
	defer CloseQuietly(archive)

	entries := make([]EntryInfo, 0, len(archive.File))
	for _, f := range archive.File {
		entries = append(entries, EntryInfo{
			Name:             f.Name,
			CompressedSize:   f.CompressedSize64,
			UncompressedSize: f.UncompressedSize64,
			CRC32:            f.CRC32,
		})
	}
	return entries, nil
}
