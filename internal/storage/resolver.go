package storage

import (
	"path/filepath"
	"strings"

	apierrors "github.com/lagsuite/ghosthq/internal/errors"
)

// legacyRootPrefix is the path prefix the frontend historically sent along
// with project paths. It is stripped if present so callers may pass either
// form.
const legacyRootPrefix = "GHOST_Proyectos"

// Resolver maps logical project paths onto the configured projects root.
// Every resolved path is canonicalized and checked against the root so a
// crafted path token cannot escape it.
type Resolver struct {
	root string
}

// NewResolver creates a resolver for the given projects root directory.
// The root is made absolute so containment checks are stable regardless of
// the process working directory.
func NewResolver(projectsRoot string) (*Resolver, error) {
	abs, err := filepath.Abs(projectsRoot)
	if err != nil {
		return nil, apierrors.InternalWithError("failed to resolve projects root", err)
	}
	return &Resolver{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute projects root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve maps a logical project path (optionally carrying the legacy
// "GHOST_Proyectos/" prefix) to an absolute path under the projects root.
// Returns PATH_OUTSIDE_ROOT if the cleaned result escapes the root.
func (r *Resolver) Resolve(projectPath string) (string, error) {
	cleaned := StripRootPrefix(projectPath)
	abs := filepath.Clean(filepath.Join(r.root, filepath.FromSlash(cleaned)))
	if !r.contains(abs) {
		return "", apierrors.PathOutsideRoot(projectPath)
	}
	return abs, nil
}

// ResolveItem resolves an item path relative to an already-resolved project
// directory, with the same containment guarantee.
func (r *Resolver) ResolveItem(projectAbs, itemPath string) (string, error) {
	abs := filepath.Clean(filepath.Join(projectAbs, filepath.FromSlash(itemPath)))
	if !r.contains(abs) {
		return "", apierrors.PathOutsideRoot(itemPath)
	}
	return abs, nil
}

// contains reports whether abs is the root itself or lies below it.
func (r *Resolver) contains(abs string) bool {
	rel, err := filepath.Rel(r.root, abs)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}

// StripRootPrefix removes a leading "GHOST_Proyectos/" (or backslash form)
// from a logical path. Idempotent whether or not the caller included it.
func StripRootPrefix(p string) string {
	p = strings.TrimPrefix(p, legacyRootPrefix+"/")
	p = strings.TrimPrefix(p, legacyRootPrefix+"\\")
	if p == legacyRootPrefix {
		return ""
	}
	return p
}

// NormalizePath converts a path to forward slashes for API responses and
// manifest entries.
func NormalizePath(p string) string {
	return filepath.ToSlash(p)
}
