// Package fsx holds the filesystem discipline shared by every artifact
// writer: same-directory temp files and atomic renames.
package fsx

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
)

// EnsureDir creates dir and its parents if missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// TempPath derives a hidden sibling temp path for finalPath. The
// original extension is preserved so format-sniffing tools (ffmpeg)
// still recognize the container.
func TempPath(finalPath string) string {
	dir := filepath.Dir(finalPath)
	base := filepath.Base(finalPath)
	var buf [4]byte
	_, _ = rand.Read(buf[:])
	return filepath.Join(dir, ".tmp-"+hex.EncodeToString(buf[:])+"-"+base)
}

// WriteFileAtomic writes name under dir via a sibling temp file and
// rename, replacing any existing file. The temp file is synced before
// the rename so a crash never leaves a partial target.
func WriteFileAtomic(dir, name string, data []byte) error {
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, filepath.Join(dir, name))
}
