package folders

import (
	"time"
)

// ListSubfoldersByName returns the full path of every directory below root
// whose base name equals name byte for byte.
//
// A matching directory is not searched any further, so no returned path lies
// inside another one. Matches are returned in pre-order: siblings in listing
// order, with the matches inside a non-matching directory taking that
// directory's place. An empty name matches nothing.
func (w *Walker) ListSubfoldersByName(root string, name string) ([]string, error) {
	started := time.Now()

	folders, err := w.findFolders(root, name)
	w.metrics.OperationFinished(string(OperationFind), started, err)
	if err != nil {
		return nil, err
	}
	return folders, nil
}

type pendingFolder struct {
	path    string
	matched bool
}

func (w *Walker) findFolders(root string, name string) ([]string, error) {
	folders := []string{}
	pending := []pendingFolder{{path: root}}

	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if current.matched {
			folders = append(folders, current.path)
			continue
		}

		entries, err := w.list(current.path)
		if err != nil {
			return nil, err
		}

		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].IsDir {
				pending = append(pending, pendingFolder{
					path:    entries[i].FullPath,
					matched: entries[i].Name == name,
				})
			}
		}
	}

	return folders, nil
}
