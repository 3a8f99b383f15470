// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package systemd

import (
	"os"

	"github.com/google/renameio/v2"
)

// FileSystemOps is the subset of file system operations the adapter
// performs on the services directory.
type FileSystemOps interface {
	MkdirAll(dirname string, perm os.FileMode) error
	WriteFile(filename string, data []byte, perm os.FileMode) error
	ReadFile(filename string) ([]byte, error)
	ReadDir(dirname string) ([]os.DirEntry, error)
	Remove(name string) error
}

type fileSystemOps struct{}

func (fileSystemOps) MkdirAll(dirname string, perm os.FileMode) error {
	return os.MkdirAll(dirname, perm)
}

// WriteFile replaces filename atomically, so readers (and systemd) see
// either the old content or the new, never a partial file.
func (fileSystemOps) WriteFile(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}

func (fileSystemOps) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

func (fileSystemOps) ReadDir(dirname string) ([]os.DirEntry, error) {
	return os.ReadDir(dirname)
}

func (fileSystemOps) Remove(name string) error {
	return os.Remove(name)
}
