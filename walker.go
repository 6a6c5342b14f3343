package folders

import (
	"io/fs"

	log "github.com/sirupsen/logrus"

	"github.com/owservable/folders/metrics"
	"github.com/owservable/folders/storage"
)

// Walker runs the traversal operations against one filesystem. It holds no
// per-call state and may be shared between goroutines.
type Walker struct {
	fs      storage.Filesystem
	workers int
	metrics *metrics.TraversalMetrics
}

type Option func(*Walker)

// WithWorkers checks up to n entries of a directory concurrently.
func WithWorkers(n int) Option {
	return func(w *Walker) {
		if n > 0 {
			w.workers = n
		}
	}
}

// WithMetrics records listings, entry checks and operations.
func WithMetrics(m *metrics.TraversalMetrics) Option {
	return func(w *Walker) {
		w.metrics = m
	}
}

func New(fsys storage.Filesystem, opts ...Option) *Walker {
	w := &Walker{fs: fsys, workers: 1}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run dispatches to the operation's method. name is ignored for
// OperationFiles.
func (w *Walker) Run(op Operation, root string, name string) ([]string, error) {
	switch op {
	case OperationFiles:
		files := []string{}
		if _, err := w.AddFilesFromFolder(&files, root); err != nil {
			return nil, err
		}
		return files, nil
	case OperationFind:
		return w.ListSubfoldersByName(root, name)
	case OperationCollect:
		return w.ListSubfoldersFilesByFolderName(root, name)
	}

	_, err := ParseOperation(string(op))
	return nil, err
}

// list reads and classifies the direct entries of dir.
func (w *Walker) list(dir string) ([]Entry, error) {
	if dir == "" {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrInvalid}
	}

	names, err := w.fs.ReadDirNames(dir)
	if err != nil {
		return nil, err
	}

	w.metrics.DirectoryListed()
	log.Debugf("Listed %d entries in %s", len(names), dir)

	return w.classify(dir, names)
}
