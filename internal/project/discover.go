package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrAmbiguousProject indicates the project file could not be determined
// because the working directory holds zero or more than one candidate.
var ErrAmbiguousProject = errors.New("cannot determine project file")

// Discover returns the path of the single project file in dir. Zero or
// multiple candidates yield ErrAmbiguousProject; the caller should pass an
// explicit project path instead.
func Discover(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrPersistence, dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), Extension) {
			candidates = append(candidates, filepath.Join(dir, entry.Name()))
		}
	}

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		return "", fmt.Errorf("%w: no %s file in %s", ErrAmbiguousProject, Extension, dir)
	default:
		return "", fmt.Errorf("%w: found %d %s files in %s", ErrAmbiguousProject, len(candidates), Extension, dir)
	}
}
