// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package fileinfo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// ErrNotExist is returned when the file is missing.
var ErrNotExist = errors.New("file does not exist")

// ErrNotContained is returned when a name resolves outside its root.
var ErrNotContained = errors.New("path escapes root directory")

// ErrExists is returned when a rename target is already taken.
var ErrExists = errors.New("file already exists")

// Entry is the JSON description of a file returned by the files API.
type Entry struct {
	FullName     string `json:"fullname"`
	Name         string `json:"name"`
	Path         string `json:"path"`
	Extension    string `json:"extension"`
	LastModified int64  `json:"lastModified"` // unix milliseconds
	Size         int64  `json:"size"`
	SizeString   string `json:"sizeString"`
	IsDirectory  bool   `json:"isDirectory"`
}

// FileInfo is a file addressed by a root directory and a name relative to it.
type FileInfo struct {
	root     string
	name     string
	fullName string
}

// New returns the file named name under root. The path is a plain join.
func New(root, name string) *FileInfo {
	return &FileInfo{
		root:     root,
		name:     name,
		fullName: filepath.Join(root, name),
	}
}

// Root returns the directory the file was resolved against.
func (f *FileInfo) Root() string { return f.root }

// Name returns the base name of the file.
func (f *FileInfo) Name() string { return filepath.Base(f.fullName) }

// FullName returns the absolute path, falling back to the joined path when it
// cannot be made absolute.
func (f *FileInfo) FullName() string {
	abs, err := filepath.Abs(f.fullName)
	if err != nil {
		return f.fullName
	}
	return abs
}

// Extension returns the lower-cased extension including the dot.
func (f *FileInfo) Extension() string {
	return strings.ToLower(filepath.Ext(f.fullName))
}

// Contained reports whether the file resolves to a path strictly inside its root.
func (f *FileInfo) Contained() bool {
	root, err := filepath.Abs(f.root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, f.FullName())
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Exists reports whether the file exists and is not a directory.
func (f *FileInfo) Exists() bool {
	st, err := os.Stat(f.fullName)
	return err == nil && !st.IsDir()
}

// Stat describes the file.
func (f *FileInfo) Stat() (Entry, error) {
	st, err := os.Stat(f.fullName)
	if err != nil {
		return Entry{}, wrapNotExist(f.name, err)
	}
	return f.entry(st), nil
}

func (f *FileInfo) entry(st fs.FileInfo) Entry {
	size := st.Size()
	return Entry{
		FullName:     f.FullName(),
		Name:         st.Name(),
		Path:         f.root,
		Extension:    f.Extension(),
		LastModified: st.ModTime().UnixMilli(),
		Size:         size,
		SizeString:   humanize.Bytes(uint64(max(size, 0))),
		IsDirectory:  st.IsDir(),
	}
}

// Open opens the file for reading. Names escaping the root are refused.
func (f *FileInfo) Open() (*os.File, error) {
	if !f.Contained() {
		return nil, fmt.Errorf("open %s: %w", f.name, ErrNotContained)
	}
	fh, err := os.Open(f.fullName)
	if err != nil {
		return nil, wrapNotExist(f.name, err)
	}
	return fh, nil
}

// ReadAll returns the file contents.
func (f *FileInfo) ReadAll() ([]byte, error) {
	b, err := os.ReadFile(f.fullName)
	if err != nil {
		return nil, wrapNotExist(f.name, err)
	}
	return b, nil
}

// ContentType sniffs the MIME type from the file contents.
func (f *FileInfo) ContentType() (string, error) {
	mt, err := mimetype.DetectFile(f.fullName)
	if err != nil {
		return "", wrapNotExist(f.name, err)
	}
	return mt.String(), nil
}

// Rename moves the file to newName within the same root and updates f.
// Both names must stay inside the root and newName must not exist yet;
// renaming a file to its own name is a no-op.
func (f *FileInfo) Rename(newName string) error {
	dst := New(f.root, newName)
	if !f.Contained() || !dst.Contained() {
		return fmt.Errorf("rename %s to %s: %w", f.name, newName, ErrNotContained)
	}
	target := dst.fullName
	if target == f.fullName {
		if !f.Exists() {
			return fmt.Errorf("rename %s: %w", f.name, wrapNotExist(f.name, fs.ErrNotExist))
		}
		return nil
	}
	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("rename %s to %s: %w", f.name, newName, ErrExists)
	}
	if err := os.Rename(f.fullName, target); err != nil {
		return fmt.Errorf("rename %s to %s: %w", f.name, newName, wrapNotExist(f.name, err))
	}
	f.name = newName
	f.fullName = target
	return nil
}

// Delete removes the file and returns its last description.
func (f *FileInfo) Delete() (Entry, error) {
	e, err := f.Stat()
	if err != nil {
		return Entry{}, err
	}
	if err := os.Remove(f.fullName); err != nil {
		return Entry{}, fmt.Errorf("delete %s: %w", f.name, err)
	}
	return e, nil
}

// List returns the regular, non-hidden files directly under root, newest first.
// A missing root yields an empty list.
func List(root string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		st, err := de.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		entries = append(entries, New(root, de.Name()).entry(st))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastModified > entries[j].LastModified
	})
	return entries, nil
}

func wrapNotExist(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", name, ErrNotExist)
	}
	return err
}
