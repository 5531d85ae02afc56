package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
// Directories are derived implicitly from the paths of files added with SetFile,
// so nested ReadDir calls work without explicit directory registration.
type MockFileSystem struct {
	files map[string][]byte
	dirs  map[string]bool

	// Links maps a canonical alias onto a target path, simulating symlinked
	// directories for cycle-detection tests.
	links map[string]string

	// FailRename, when set, makes Rename return this error.
	FailRename error

	// FailWrite, when set, makes WriteFile return this error.
	FailWrite error
}

// NewMockFileSystem creates an empty in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
		links: make(map[string]string),
	}
}

// SetFile adds a file and registers all of its parent directories.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	path = filepath.Clean(path)
	m.files[path] = data
	for dir := filepath.Dir(path); dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
	}
	m.dirs["/"] = true
}

// SetDir registers an empty directory.
func (m *MockFileSystem) SetDir(path string) {
	path = filepath.Clean(path)
	for dir := path; dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
	}
	m.dirs["/"] = true
}

// SetLink registers path as a symlink resolving to target.
func (m *MockFileSystem) SetLink(path, target string) {
	m.SetDir(path)
	m.links[filepath.Clean(path)] = filepath.Clean(target)
}

// File returns the current content of a file and whether it exists.
func (m *MockFileSystem) File(path string) ([]byte, bool) {
	data, ok := m.files[filepath.Clean(path)]
	return data, ok
}

func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, _ fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.FailWrite != nil {
		return m.FailWrite
	}
	m.SetFile(path, data)
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if data, ok := m.files[path]; ok {
		return mockFileInfo{name: filepath.Base(path), size: int64(len(data))}, nil
	}
	if m.dirs[path] {
		return mockFileInfo{name: filepath.Base(path), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

func (m *MockFileSystem) ReadDir(ctx context.Context, dir string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir = filepath.Clean(dir)
	if !m.dirs[dir] {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}
	}

	seen := make(map[string]bool)
	var entries []fs.DirEntry

	for path := range m.files {
		if filepath.Dir(path) == dir {
			name := filepath.Base(path)
			if !seen[name] {
				seen[name] = true
				entries = append(entries, mockDirEntry{name: name})
			}
		}
	}
	for path := range m.dirs {
		if path != dir && filepath.Dir(path) == dir {
			name := filepath.Base(path)
			if !seen[name] {
				seen[name] = true
				entries = append(entries, mockDirEntry{name: name, dir: true})
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

func (m *MockFileSystem) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.FailRename != nil {
		return m.FailRename
	}
	oldPath = filepath.Clean(oldPath)
	data, ok := m.files[oldPath]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	delete(m.files, oldPath)
	m.SetFile(newPath, data)
	return nil
}

func (m *MockFileSystem) Canonical(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path = filepath.Clean(path)
	if target, ok := m.links[path]; ok {
		return target, nil
	}
	// Resolve links appearing as a parent segment.
	for link, target := range m.links {
		if strings.HasPrefix(path, link+string(filepath.Separator)) {
			return target + strings.TrimPrefix(path, link), nil
		}
	}
	return path, nil
}

// Ensure MockFileSystem implements FileSystem.
var _ FileSystem = (*MockFileSystem)(nil)

type mockFileInfo struct {
	name string
	size int64
	dir  bool
}

func (fi mockFileInfo) Name() string       { return fi.name }
func (fi mockFileInfo) Size() int64        { return fi.size }
func (fi mockFileInfo) Mode() fs.FileMode  { return 0644 }
func (fi mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi mockFileInfo) IsDir() bool        { return fi.dir }
func (fi mockFileInfo) Sys() any           { return nil }

type mockDirEntry struct {
	name string
	dir  bool
}

func (de mockDirEntry) Name() string               { return de.name }
func (de mockDirEntry) IsDir() bool                { return de.dir }
func (de mockDirEntry) Type() fs.FileMode          { return modeFor(de.dir) }
func (de mockDirEntry) Info() (fs.FileInfo, error) { return mockFileInfo{name: de.name, dir: de.dir}, nil }

func modeFor(dir bool) fs.FileMode {
	if dir {
		return os.ModeDir
	}
	return 0
}
