// Package storage provides the filesystems the traversal runs against: the
// local disk and S3 buckets.
package storage

import (
	"io/fs"

	"github.com/owservable/folders/config"
)

// Filesystem is the boundary of the traversal: a directory listing and a
// link-aware metadata lookup.
type Filesystem interface {
	// ReadDirNames returns the names of the direct entries of dir, sorted.
	ReadDirNames(dir string) ([]string, error)
	// Lstat describes name without following symbolic links.
	Lstat(name string) (fs.FileInfo, error)
	// Join joins path elements with the filesystem's separator.
	Join(elem ...string) string
}

// NewFilesystem creates the filesystem backing the given source.
func NewFilesystem(source *config.Source) (Filesystem, error) {
	if source.IsLocal() {
		return NewLocalFilesystem(), nil
	}

	return NewS3FilesystemFromConfig(source.S3)
}
