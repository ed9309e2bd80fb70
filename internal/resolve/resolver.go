// Package resolve locates audio assets declared by catalog entries.
//
// Catalog paths reference the asset tree under one of two directory-name
// spellings ("models" and "modeles") that point at the same physical tree.
// When the declared path does not exist, the resolver retries once with the
// other spelling substituted.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	primaryToken   = "models/"
	alternateToken = "modeles/"
)

// ErrNotFound indicates no location for the declared path exists.
var ErrNotFound = errors.New("audio file not found")

// Resolver turns declared relative audio paths into absolute ones.
type Resolver struct {
	// BaseDir is the directory declared paths are resolved against.
	BaseDir string
}

// Resolve joins BaseDir with the declared relative path. If that location
// does not exist and the path contains one of the two directory-name
// spellings, the other spelling is substituted and checked once. Whichever
// token occurs first in the declared path decides the substitution direction;
// all occurrences of that token are replaced. Returns the absolute path of
// the first location that exists, or ErrNotFound.
func (r Resolver) Resolve(declared string) (string, error) {
	trimmed := strings.TrimSpace(declared)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotFound)
	}

	primary := filepath.Join(r.BaseDir, trimmed)
	if exists(primary) {
		return primary, nil
	}

	if alt, ok := substitute(trimmed); ok {
		altPath := filepath.Join(r.BaseDir, alt)
		if exists(altPath) {
			return altPath, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, primary)
}

func substitute(declared string) (string, bool) {
	primaryIdx := strings.Index(declared, primaryToken)
	alternateIdx := strings.Index(declared, alternateToken)

	switch {
	case primaryIdx >= 0 && (alternateIdx < 0 || primaryIdx < alternateIdx):
		return strings.ReplaceAll(declared, primaryToken, alternateToken), true
	case alternateIdx >= 0:
		return strings.ReplaceAll(declared, alternateToken, primaryToken), true
	default:
		return "", false
	}
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
