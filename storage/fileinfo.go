package storage

import (
	"io/fs"
	"time"
)

// objectInfo describes an S3 object or key prefix.
type objectInfo struct {
	name    string
	size    int64
	modTime time.Time
	dir     bool
}

func (o *objectInfo) Name() string       { return o.name }
func (o *objectInfo) Size() int64        { return o.size }
func (o *objectInfo) ModTime() time.Time { return o.modTime }
func (o *objectInfo) IsDir() bool        { return o.dir }
func (o *objectInfo) Sys() any           { return nil }

func (o *objectInfo) Mode() fs.FileMode {
	if o.dir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}
