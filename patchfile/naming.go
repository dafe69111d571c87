package patchfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// On-disk names shared by every reader and writer of the patch directory.
const (
	PatchDirectoryName = "patch"
	PatchInfoName      = "patch.info"
	PatchInfoLockName  = "patch.lock"
	PatchBaseName      = "patch-"
	PatchSuffix        = ".patch"
	DexSuffix          = ".dex"

	// versionPrefixLength is how much of a fingerprint names a version directory.
	versionPrefixLength = 8
)

// IsWellFormed reports whether s is FingerprintLength characters long. Characters are
// counted as runes, so multibyte input is never cut mid character when naming.
func IsWellFormed(s string) bool {
	return utf8.RuneCountInString(s) == FingerprintLength
}

// ParseFingerprint validates user supplied input as a lowercase hex fingerprint.
func ParseFingerprint(s string) (string, error) {
	if !IsWellFormed(s) {
		return "", fmt.Errorf("%w: %q has length %d, want %d", ErrMalformedFingerprint, s, utf8.RuneCountInString(s), FingerprintLength)
	}
	if !isLowerHex(s) {
		return "", fmt.Errorf("%w: %q is not lowercase hex", ErrMalformedFingerprint, s)
	}
	return s, nil
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// VersionDirectoryName returns "patch-" followed by the first 8 characters of fingerprint.
// Distinct fingerprints sharing those 8 characters map to the same name; nothing here
// detects that.
func VersionDirectoryName(fingerprint string) (string, bool) {
	if !IsWellFormed(fingerprint) {
		return "", false
	}
	return PatchBaseName + leadingRunes(fingerprint, versionPrefixLength), true
}

// leadingRunes returns the first n characters of s, which must have more than n.
func leadingRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// VersionArchiveName returns the version directory name with PatchSuffix appended.
func VersionArchiveName(fingerprint string) (string, bool) {
	name, ok := VersionDirectoryName(fingerprint)
	if !ok {
		return "", false
	}
	return name + PatchSuffix, true
}

// IsRawDexFile reports whether name carries the code artifact suffix.
func IsRawDexFile(name string) bool {
	return strings.HasSuffix(name, DexSuffix)
}

// OptimizedPathFor places the base name of sourcePath in targetDirectory with its
// extension replaced by DexSuffix (appended when there is none). The loader derives the
// same name independently, so this must not change.
func OptimizedPathFor(sourcePath, targetDirectory string) string {
	name := filepath.Base(sourcePath)
	if !IsRawDexFile(name) {
		if dot := strings.LastIndex(name, "."); dot < 0 {
			name += DexSuffix
		} else {
			name = name[:dot] + DexSuffix
		}
	}
	return filepath.Join(targetDirectory, name)
}

// Layout resolves patch paths under an application-private root.
type Layout struct {
	Root string
}

// PatchDirectory is <root>/patch.
func (l Layout) PatchDirectory() string {
	return filepath.Join(l.Root, PatchDirectoryName)
}

// InfoFile is <root>/patch/patch.info.
func (l Layout) InfoFile() string {
	return filepath.Join(l.PatchDirectory(), PatchInfoName)
}

// LockFile is <root>/patch/patch.lock. It is only a handle for the external lock.
func (l Layout) LockFile() string {
	return filepath.Join(l.PatchDirectory(), PatchInfoLockName)
}

// VersionDirectory is <root>/patch/patch-<first8>.
func (l Layout) VersionDirectory(fingerprint string) (string, error) {
	name, ok := VersionDirectoryName(fingerprint)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMalformedFingerprint, fingerprint)
	}
	return filepath.Join(l.PatchDirectory(), name), nil
}

// VersionArchive is <root>/patch/patch-<first8>.patch.
func (l Layout) VersionArchive(fingerprint string) (string, error) {
	name, ok := VersionArchiveName(fingerprint)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMalformedFingerprint, fingerprint)
	}
	return filepath.Join(l.PatchDirectory(), name), nil
}

// Version is one patch-<first8> artifact found in the patch directory.
type Version struct {
	// Prefix is the 8 character fingerprint prefix.
	Prefix     string
	Directory  string
	Archive    string
	HasDir     bool
	HasArchive bool
}

// Versions lists the version directories and archives in the patch directory, sorted by
// prefix. A missing patch directory means no patching is active and yields no versions.
func (l Layout) Versions() ([]Version, error) {
	dirents, err := os.ReadDir(l.PatchDirectory())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	found := make(map[string]*Version)
	for _, d := range dirents {
		name := d.Name()
		if !strings.HasPrefix(name, PatchBaseName) {
			continue
		}
		prefix := strings.TrimPrefix(name, PatchBaseName)
		isArchive := !d.IsDir() && strings.HasSuffix(prefix, PatchSuffix)
		if isArchive {
			prefix = strings.TrimSuffix(prefix, PatchSuffix)
		} else if !d.IsDir() {
			continue
		}
		if len(prefix) != versionPrefixLength || !isLowerHex(prefix) {
			continue
		}
		v, ok := found[prefix]
		if !ok {
			v = &Version{
				Prefix:    prefix,
				Directory: filepath.Join(l.PatchDirectory(), PatchBaseName+prefix),
				Archive:   filepath.Join(l.PatchDirectory(), PatchBaseName+prefix+PatchSuffix),
			}
			found[prefix] = v
		}
		if isArchive {
			v.HasArchive = true
		} else {
			v.HasDir = true
		}
	}

	versions := make([]Version, 0, len(found))
	for _, v := range found {
		versions = append(versions, *v)
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Prefix < versions[j].Prefix
	})
	return versions, nil
}
