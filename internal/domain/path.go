package domain

import "path/filepath"

// PackagePath is an absolute path to a package directory under the stow root.
type PackagePath struct {
	path string
}

// NewPackagePath validates and constructs a PackagePath.
func NewPackagePath(s string) Result[PackagePath] {
	if s == "" {
		return Err[PackagePath](ErrInvalidPath{Path: s, Reason: "path is empty"})
	}
	if !filepath.IsAbs(s) {
		return Err[PackagePath](ErrInvalidPath{Path: s, Reason: "path is not absolute"})
	}
	return Ok(PackagePath{path: filepath.Clean(s)})
}

// String returns the path as a string.
func (p PackagePath) String() string { return p.path }

// Join appends components and returns the resulting path.
func (p PackagePath) Join(elem ...string) PackagePath {
	return PackagePath{path: filepath.Join(append([]string{p.path}, elem...)...)}
}

// Parent returns the parent directory.
func (p PackagePath) Parent() PackagePath {
	return PackagePath{path: filepath.Dir(p.path)}
}

// Equals reports whether two PackagePaths denote the same lexical path.
func (p PackagePath) Equals(other PackagePath) bool { return p.path == other.path }

// TargetPath is an absolute path to the target root that packages are stowed into.
type TargetPath struct {
	path string
}

// NewTargetPath validates and constructs a TargetPath.
func NewTargetPath(s string) Result[TargetPath] {
	if s == "" {
		return Err[TargetPath](ErrInvalidPath{Path: s, Reason: "path is empty"})
	}
	if !filepath.IsAbs(s) {
		return Err[TargetPath](ErrInvalidPath{Path: s, Reason: "path is not absolute"})
	}
	return Ok(TargetPath{path: filepath.Clean(s)})
}

// String returns the path as a string.
func (p TargetPath) String() string { return p.path }

// Join appends components and returns the resulting path.
func (p TargetPath) Join(elem ...string) TargetPath {
	return TargetPath{path: filepath.Join(append([]string{p.path}, elem...)...)}
}

// Parent returns the parent directory.
func (p TargetPath) Parent() TargetPath {
	return TargetPath{path: filepath.Dir(p.path)}
}

// Equals reports whether two TargetPaths denote the same lexical path.
func (p TargetPath) Equals(other TargetPath) bool { return p.path == other.path }

// Rel computes the path of child relative to p, using lexical (not
// symlink-resolving) comparison. child must be lexically inside p.
func (p TargetPath) Rel(child TargetPath) (string, error) {
	return filepath.Rel(p.path, child.path)
}

// FilePath is a general-purpose absolute path to a file, directory, or
// symlink on disk, used for package-relative item locations.
type FilePath struct {
	path string
}

// NewFilePath validates and constructs a FilePath.
func NewFilePath(s string) Result[FilePath] {
	if s == "" {
		return Err[FilePath](ErrInvalidPath{Path: s, Reason: "path is empty"})
	}
	if !filepath.IsAbs(s) {
		return Err[FilePath](ErrInvalidPath{Path: s, Reason: "path is not absolute"})
	}
	return Ok(FilePath{path: filepath.Clean(s)})
}

// MustParsePath constructs a FilePath, panicking on error. Intended for
// tests operating on hard-coded, known-valid paths.
func MustParsePath(s string) FilePath {
	r := NewFilePath(s)
	if r.IsErr() {
		panic(r.UnwrapErr())
	}
	return r.Unwrap()
}

// String returns the path as a string.
func (p FilePath) String() string { return p.path }

// Join appends components and returns the resulting path.
func (p FilePath) Join(elem ...string) FilePath {
	return FilePath{path: filepath.Join(append([]string{p.path}, elem...)...)}
}

// Parent returns the parent directory.
func (p FilePath) Parent() FilePath {
	return FilePath{path: filepath.Dir(p.path)}
}

// Base returns the final path component.
func (p FilePath) Base() string { return filepath.Base(p.path) }

// Equals reports whether two FilePaths denote the same lexical path.
func (p FilePath) Equals(other FilePath) bool { return p.path == other.path }

// Lexical normalizes a path by collapsing "." and ".." components without
// touching the filesystem or requiring the path to exist. Restow uses it to
// recognize stow symlinks whose target has been deleted, where
// Canonicalize cannot be used because it requires the path to exist.
func Lexical(base, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Clean(filepath.Join(base, rel))
}
