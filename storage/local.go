package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// LocalFilesystem reads the host's filesystem.
type LocalFilesystem struct{}

func NewLocalFilesystem() *LocalFilesystem {
	return &LocalFilesystem{}
}

func (*LocalFilesystem) ReadDirNames(dir string) ([]string, error) {
	directory, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer directory.Close()

	names, err := directory.Readdirnames(-1)
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

func (*LocalFilesystem) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (*LocalFilesystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}
