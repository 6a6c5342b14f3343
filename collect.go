package folders

import (
	"time"
)

// AddFilesFromFolder appends the full path of every file reachable from folder
// to *files and returns files itself. A nil files starts a new slice.
//
// The files of a directory are appended in listing order before any of its
// subdirectories is entered; subdirectories follow in listing order, each
// under the same rule. Symbolic links count as files and are never followed.
//
// If any directory on the way cannot be listed or checked, the error is
// returned unchanged and *files is left as it was.
func (w *Walker) AddFilesFromFolder(files *[]string, folder string) (*[]string, error) {
	started := time.Now()

	found, err := w.collectFiles(folder)
	w.metrics.OperationFinished(string(OperationFiles), started, err)
	if err != nil {
		return nil, err
	}

	if files == nil {
		files = new([]string)
	}
	*files = append(*files, found...)
	return files, nil
}

// ListSubfoldersFilesByFolderName returns the files below every folder that
// ListSubfoldersByName finds, one block per folder in the order the folders
// were found. No folder found is an empty result, not an error.
func (w *Walker) ListSubfoldersFilesByFolderName(root string, name string) ([]string, error) {
	started := time.Now()

	files, err := w.collectNamedFolderFiles(root, name)
	w.metrics.OperationFinished(string(OperationCollect), started, err)
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (w *Walker) collectNamedFolderFiles(root string, name string) ([]string, error) {
	folders, err := w.findFolders(root, name)
	if err != nil {
		return nil, err
	}

	files := []string{}
	for _, folder := range folders {
		found, err := w.collectFiles(folder)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	return files, nil
}

// collectFiles walks the tree with an explicit stack. Subdirectories are
// pushed in reverse so they are popped in listing order.
func (w *Walker) collectFiles(folder string) ([]string, error) {
	var files []string
	pending := []string{folder}

	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := w.list(dir)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			if !entry.IsDir {
				files = append(files, entry.FullPath)
			}
		}

		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].IsDir {
				pending = append(pending, entries[i].FullPath)
			}
		}
	}

	return files, nil
}
