// Package folders collects files and named subfolders below a directory.
//
// All operations list each directory once, lstat every entry once without
// following symbolic links, and return paths in a fixed pre-order: the files
// of a directory come before anything found in its subdirectories, and
// siblings are visited in listing order. Nothing is cached between calls.
//
// The package-level functions run against the local filesystem. Use New to
// traverse any storage.Filesystem, for example an S3 bucket.
package folders

import (
	"fmt"

	"github.com/owservable/folders/storage"
)

// Operation names one of the traversal operations.
type Operation string

const (
	// OperationFiles collects every file below a folder.
	OperationFiles Operation = "files"
	// OperationFind finds subfolders by name.
	OperationFind Operation = "find"
	// OperationCollect collects the files of every subfolder with a name.
	OperationCollect Operation = "collect"
)

// ParseOperation validates an operation name.
func ParseOperation(name string) (Operation, error) {
	switch op := Operation(name); op {
	case OperationFiles, OperationFind, OperationCollect:
		return op, nil
	}
	return "", fmt.Errorf("unknown operation %#q, expected one of files, find, collect", name)
}

// NeedsName reports whether the operation matches folders by name.
func (op Operation) NeedsName() bool {
	return op == OperationFind || op == OperationCollect
}

var local = New(storage.NewLocalFilesystem())

// AddFilesFromFolder appends every file below folder to *files and returns
// files. See Walker.AddFilesFromFolder.
func AddFilesFromFolder(files *[]string, folder string) (*[]string, error) {
	return local.AddFilesFromFolder(files, folder)
}

// ListSubfoldersByName returns every folder below root named name. See
// Walker.ListSubfoldersByName.
func ListSubfoldersByName(root string, name string) ([]string, error) {
	return local.ListSubfoldersByName(root, name)
}

// ListSubfoldersFilesByFolderName returns the files of every folder below root
// named name. See Walker.ListSubfoldersFilesByFolderName.
func ListSubfoldersFilesByFolderName(root string, name string) ([]string, error) {
	return local.ListSubfoldersFilesByFolderName(root, name)
}
