package patchfile

import (
	"crypto/md5"
	_ "crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/opencontainers/go-digest"
)

// ChunkSize is the number of bytes read per step while digesting a stream.
const ChunkSize = 100 * 1024

// FingerprintLength is the length of a hex encoded MD5 digest.
const FingerprintLength = md5.Size * 2

// Digest returns the lowercase hex MD5 fingerprint of everything readable from r.
// It does not close r.
func Digest(r io.Reader) (string, error) {
	return DigestBuffered(r, ChunkSize)
}

// DigestBuffered is Digest with an explicit chunk size. The result does not depend on
// chunkSize; values below 1 fall back to ChunkSize.
func DigestBuffered(r io.Reader, chunkSize int) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: nil reader", ErrReadFailure)
	}
	if chunkSize < 1 {
		chunkSize = ChunkSize
	}
	h := md5.New()
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrReadFailure, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DigestStream digests rc and closes it on every path.
func DigestStream(rc io.ReadCloser) (string, error) {
	if rc == nil {
		return "", fmt.Errorf("%w: nil stream", ErrReadFailure)
	}
	defer CloseQuietly(rc)
	return Digest(rc)
}

// DigestFile hashes the file at path.
func DigestFile(path string) (string, error) {
	f, err := openRegular(path)
	if err != nil {
		return "", err
	}
	return DigestStream(f)
}

// OCIDigest returns the canonical (sha256) OCI content digest of r.
func OCIDigest(r io.Reader) (digest.Digest, error) {
	d, err := digest.Canonical.FromReader(r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	return d, nil
}

// OCIDigestFile returns the canonical OCI content digest of the file at path.
func OCIDigestFile(path string) (digest.Digest, error) {
	f, err := openRegular(path)
	if err != nil {
		return "", err
	}
	defer CloseQuietly(f)
	return OCIDigest(f)
}

// CloseQuietly closes c, ignoring a nil closer and logging any error.
func CloseQuietly(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		diag().Warn("failed to close resource", "error", err)
	}
}

func openRegular(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrExpectedFile)
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	return f, nil
}
