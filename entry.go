package folders

import (
	"sync"
)

// Entry is a classified directory entry.
type Entry struct {
	Name     string
	FullPath string
	// IsDir is false for symbolic links, whatever they point to.
	IsDir bool
}

// classify runs one Lstat per name in parent. The result is in the order of
// names regardless of how many workers run concurrently; the first
// failing entry in that order decides the error.
func (w *Walker) classify(parent string, names []string) ([]Entry, error) {
	entries := make([]Entry, len(names))
	errs := make([]error, len(names))

	inspect := func(i int) {
		fullPath := w.fs.Join(parent, names[i])

		info, err := w.fs.Lstat(fullPath)
		if err != nil {
			errs[i] = err
			return
		}

		entries[i] = Entry{Name: names[i], FullPath: fullPath, IsDir: info.IsDir()}
	}

	checked := len(names)

	if w.workers > 1 && len(names) > 1 {
		indexes := make(chan int)

		var wg sync.WaitGroup
		for n := min(w.workers, len(names)); n > 0; n-- {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					inspect(i)
				}
			}()
		}

		for i := range names {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
	} else {
		for i := range names {
			inspect(i)
			if errs[i] != nil {
				checked = i + 1
				break
			}
		}
	}

	w.metrics.EntriesChecked(checked)

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return entries, nil
}
