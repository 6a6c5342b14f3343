package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/owservable/folders/config"
)

// ErrOutsideSource is returned when a requested root would leave its source.
var ErrOutsideSource = errors.New("path leaves the source")

// Source is a configured, named filesystem. Roots handed to the traversal are
// resolved relative to the source's base directory.
type Source struct {
	Filesystem
	Name string
	base string
}

// NewSource creates the filesystem for a configured source.
func NewSource(cfg *config.Source) (*Source, error) {
	filesystem, err := NewFilesystem(cfg)
	if err != nil {
		return nil, fmt.Errorf("source '%s': %w", cfg.Name, err)
	}

	base := "."
	if cfg.IsLocal() {
		base = cfg.Directory
		log.Debugf("[source:%s] Using local directory %s", cfg.Name, base)
	} else {
		log.Debugf("[source:%s] Using S3 bucket %s", cfg.Name, cfg.S3.Bucket)
	}

	return &Source{Filesystem: filesystem, Name: cfg.Name, base: base}, nil
}

// NewSources creates all configured sources; the first failure aborts.
func NewSources(cfgs []*config.Source) ([]*Source, error) {
	sources := make([]*Source, 0, len(cfgs))

	for _, cfg := range cfgs {
		source, err := NewSource(cfg)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	return sources, nil
}

// Resolve turns a root relative to the source into a path of its filesystem.
// The empty root is the source's base directory.
func (s *Source) Resolve(root string) (string, error) {
	if _, local := s.Filesystem.(*LocalFilesystem); local {
		resolved := filepath.Join(s.base, root)
		if !within(s.base, resolved) {
			return "", fmt.Errorf("%#q: %w", root, ErrOutsideSource)
		}

		// a symbolic link below base may still point outside of it
		inside, err := linksWithin(s.base, resolved)
		if err != nil {
			return "", err
		}
		if !inside {
			return "", fmt.Errorf("%#q: %w", root, ErrOutsideSource)
		}
		return resolved, nil
	}

	resolved := path.Join(s.base, root)
	if escapes(resolved) {
		return "", fmt.Errorf("%#q: %w", root, ErrOutsideSource)
	}
	return resolved, nil
}

func within(base string, target string) bool {
	rel, err := filepath.Rel(base, target)
	return err == nil && !escapes(filepath.ToSlash(rel))
}

// linksWithin compares base and target after following symbolic links. A
// target that does not exist cannot be listed and is left to the traversal.
func linksWithin(base string, target string) (bool, error) {
	realBase, err := filepath.EvalSymlinks(base)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, err
	}

	realTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, err
	}

	return within(realBase, realTarget), nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, "../")
}
